package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"

	"github.com/Pohioki/foodgram-project-react/config"
	"github.com/Pohioki/foodgram-project-react/internal/database"
	"github.com/Pohioki/foodgram-project-react/internal/models"
	"github.com/Pohioki/foodgram-project-react/internal/service"
)

// Loads the ingredient catalog from a CSV file of "name,measurement_unit"
// rows. Rows already present in the database are skipped.
func main() {
	path := flag.String("file", "data/ingredients.csv", "path to the ingredients CSV")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	var ingredients []models.Ingredient
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("failed to parse %s: %v", *path, err)
		}
		if record[0] == "" || record[1] == "" {
			continue
		}
		ingredients = append(ingredients, models.Ingredient{
			Name:            record[0],
			MeasurementUnit: record[1],
		})
	}

	created, err := service.NewIngredientService(db).BulkCreate(ingredients)
	if err != nil {
		log.Fatalf("failed to seed ingredients: %v", err)
	}
	log.Printf("seeded %d of %d ingredients", created, len(ingredients))
}
