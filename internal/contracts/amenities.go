package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/amenities.v1.json
var schemasFS embed.FS

const amenitiesSchemaPath = "schemas/amenities.v1.json"

var amenitiesSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	file, err := schemasFS.Open(amenitiesSchemaPath)
	if err != nil {
		log.Fatalf("failed to open embedded schema %s: %v", amenitiesSchemaPath, err)
	}
	defer file.Close()

	if err := compiler.AddResource(amenitiesSchemaPath, file); err != nil {
		log.Fatalf("failed to add schema resource %s: %v", amenitiesSchemaPath, err)
	}

	amenitiesSchema, err = compiler.Compile(amenitiesSchemaPath)
	if err != nil {
		log.Fatalf("failed to compile schema %s: %v", amenitiesSchemaPath, err)
	}
}

// DecodeAmenities разбирает и валидирует amenities-документ из хранилища.
// Валидация на этой границе гарантирует, что до скоринга не дойдут
// произвольные ключи и не-булевы значения из "сырого" JSONB.
// Пустой или NULL документ — это валидный объект без amenities.
func DecodeAmenities(raw []byte) (map[string]bool, error) {
	if len(raw) == 0 {
		return map[string]bool{}, nil
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("amenities document is not valid JSON: %w", err)
	}

	if err := amenitiesSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("amenities document failed schema validation: %w", err)
	}

	// Схема гарантирует object с булевыми значениями.
	obj := doc.(map[string]interface{})
	amenities := make(map[string]bool, len(obj))
	for name, value := range obj {
		amenities[name], _ = value.(bool)
	}

	return amenities, nil
}
