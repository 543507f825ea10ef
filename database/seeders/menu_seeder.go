package seeders

import (
	"context"

	"github.com/shashiranjanraj/bistro/app/models"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	Register("menu", SeedMenu)
}

// SeedMenu loads a starter menu. Skips when the collection is not empty so
// re-running seed never duplicates items.
func SeedMenu(db *mongo.Database) error {
	ctx := context.Background()
	col := db.Collection("menu")

	n, err := col.EstimatedDocumentCount(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	items := []interface{}{
		models.MenuItem{Name: "Roast Duck Breast", Category: "offered", Price: 14.5, Description: "Roasted duck breast, blueberry sauce, pommes purée"},
		models.MenuItem{Name: "Tuna Niçoise", Category: "salad", Price: 12.5, Description: "Seared tuna, potatoes, green beans, olives, anchovy dressing"},
		models.MenuItem{Name: "Escalope de Veau", Category: "offered", Price: 18.0, Description: "Pan-fried veal escalope, lemon butter, capers"},
		models.MenuItem{Name: "Chicken and Walnut Salad", Category: "salad", Price: 10.0, Description: "Poached chicken, walnuts, grapes, celery, light mayonnaise"},
		models.MenuItem{Name: "Fish Parmentier", Category: "pizza", Price: 14.7, Description: "Baked white fish under mashed potato and gruyère"},
		models.MenuItem{Name: "Wild Berry Panna Cotta", Category: "dessert", Price: 6.5, Description: "Set vanilla cream, macerated wild berries"},
		models.MenuItem{Name: "Lemon Sorbet", Category: "dessert", Price: 4.5, Description: "Fresh lemon sorbet, candied zest"},
		models.MenuItem{Name: "Espresso", Category: "drinks", Price: 2.5, Description: "Double shot"},
		models.MenuItem{Name: "Fresh Orange Juice", Category: "drinks", Price: 3.5, Description: "Squeezed to order"},
		models.MenuItem{Name: "Breakfast Soup", Category: "soup", Price: 7.2, Description: "Slow-cooked beef and vegetable broth"},
	}

	_, err = col.InsertMany(ctx, items)
	return err
}
