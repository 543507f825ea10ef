package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/bistro/pkg/validate"
)

type reviewInput struct {
	Name   string  `json:"name"   validate:"required,max=10"`
	Email  string  `json:"email"  validate:"required,email"`
	Rating float64 `json:"rating" validate:"required,gte=1,max=5"`
	Role   string  `json:"role"   validate:"nullable,in=admin,regular"`
}

func TestStructValid(t *testing.T) {
	errs := validate.Struct(&reviewInput{
		Name:   "Asha",
		Email:  "asha@example.com",
		Rating: 4.5,
	})
	if validate.HasErrors(errs) {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestStructRequired(t *testing.T) {
	errs := validate.Struct(&reviewInput{Email: "asha@example.com", Rating: 3})
	if errs["name"] == "" {
		t.Error("missing required name not reported")
	}
}

func TestStructEmail(t *testing.T) {
	errs := validate.Struct(&reviewInput{Name: "Asha", Email: "not-an-email", Rating: 3})
	if errs["email"] == "" {
		t.Error("invalid email not reported")
	}
}

func TestStructNumericBounds(t *testing.T) {
	errs := validate.Struct(&reviewInput{Name: "Asha", Email: "a@b.co", Rating: 6})
	if errs["rating"] == "" {
		t.Error("rating above max not reported")
	}

	errs = validate.Struct(&reviewInput{Name: "Asha", Email: "a@b.co", Rating: 0.5})
	if errs["rating"] == "" {
		t.Error("rating below gte not reported")
	}
}

func TestStructStringMax(t *testing.T) {
	errs := validate.Struct(&reviewInput{Name: "a very long name", Email: "a@b.co", Rating: 3})
	if errs["name"] == "" {
		t.Error("name over max length not reported")
	}
}

func TestStructNullableSkips(t *testing.T) {
	errs := validate.Struct(&reviewInput{Name: "Asha", Email: "a@b.co", Rating: 3, Role: ""})
	if errs["role"] != "" {
		t.Errorf("empty nullable field reported: %v", errs["role"])
	}

	errs = validate.Struct(&reviewInput{Name: "Asha", Email: "a@b.co", Rating: 3, Role: "chef"})
	if errs["role"] == "" {
		t.Error("value outside in= list not reported")
	}

	errs = validate.Struct(&reviewInput{Name: "Asha", Email: "a@b.co", Rating: 3, Role: "regular"})
	if errs["role"] != "" {
		t.Errorf("valid in= value reported: %v", errs["role"])
	}
}

func TestStructRequiredSlice(t *testing.T) {
	type settlement struct {
		CartIDs []string `json:"cartIds" validate:"required"`
	}
	if errs := validate.Struct(&settlement{}); errs["cartIds"] == "" {
		t.Error("nil slice not reported")
	}
	if errs := validate.Struct(&settlement{CartIDs: []string{}}); errs["cartIds"] == "" {
		t.Error("empty slice not reported")
	}
	if errs := validate.Struct(&settlement{CartIDs: []string{"a1"}}); errs["cartIds"] != "" {
		t.Errorf("populated slice reported: %v", errs["cartIds"])
	}
}

func TestStructGtRule(t *testing.T) {
	type priced struct {
		Price float64 `json:"price" validate:"required,gt=0"`
	}
	if errs := validate.Struct(&priced{Price: -1}); errs["price"] == "" {
		t.Error("negative price not reported")
	}
	if errs := validate.Struct(&priced{Price: 9.99}); errs["price"] != "" {
		t.Errorf("positive price reported: %v", errs["price"])
	}
}
