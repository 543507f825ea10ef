// Package seeders provides a registry of database seed functions.
//
// Each seeder file registers itself from init():
//
//	func init() {
//	    seeders.Register("menu", SeedMenu)
//	}
//
// and the whole set runs via the CLI: bistro seed.
package seeders

import (
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(db *mongo.Database) error

var (
	regMu sync.Mutex
	order []string
	byKey = map[string]SeederFunc{}
)

// Register adds a seeder under name. Registering the same name twice
// replaces the function but keeps its original position.
func Register(name string, fn SeederFunc) {
	regMu.Lock()
	defer regMu.Unlock()
	if _, seen := byKey[name]; !seen {
		order = append(order, name)
	}
	byKey[name] = fn
}

// RunAll executes every registered seeder in registration order and
// stops on the first error.
func RunAll(db *mongo.Database) error {
	regMu.Lock()
	names := append([]string(nil), order...)
	funcs := make(map[string]SeederFunc, len(byKey))
	for k, v := range byKey {
		funcs[k] = v
	}
	regMu.Unlock()

	if len(names) == 0 {
		fmt.Println("  (no seeders registered)")
		return nil
	}

	for _, name := range names {
		fmt.Printf("  • Running seeder: %s … ", name)
		if err := funcs[name](db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("seeder %q: %w", name, err)
		}
		fmt.Println("done")
	}
	return nil
}
