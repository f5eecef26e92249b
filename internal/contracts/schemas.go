package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed schemas/events/*.json
var schemasFS embed.FS

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Добавляем все схемы как ресурсы.
	// Это нужно, чтобы схемы могли ссылаться друг на друга через `$ref`
	err := fs.WalkDir(schemasFS, "schemas/events", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".json") {
			file, err := schemasFS.Open(p)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := compiler.AddResource(p, file); err != nil {
				log.Fatalf("failed to add schema resource %s: %v", p, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	// Снова обходим для компиляции и регистрации
	err = fs.WalkDir(schemasFS, "schemas/events", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".json") {
			schema, err := compiler.Compile(p)
			if err != nil {
				log.Printf("WARNING: could not compile schema %s: %v. Skipping.", p, err)
				return nil
			}

			key := generateKeyFromPath(p)
			compiledSchemas[key] = schema
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and compiling schemas: %v", err)
	}
}

// generateKeyFromPath превращает путь схемы в ключ реестра:
// "schemas/events/apartment_created.json" -> "ApartmentCreated"
func generateKeyFromPath(p string) string {
	base := strings.TrimSuffix(path.Base(p), ".json")

	titleCaser := cases.Title(language.English)
	parts := strings.Split(base, "_")
	for i, part := range parts {
		parts[i] = titleCaser.String(part)
	}
	return strings.Join(parts, "")
}

// Validate проверяет JSON-документ по схеме, зарегистрированной под ключом.
// Публикуемые события проходят через эту проверку до отправки в брокер.
func Validate(schemaKey string, document []byte) error {
	schema, ok := compiledSchemas[schemaKey]
	if !ok {
		return fmt.Errorf("contracts: unknown schema %q", schemaKey)
	}

	var doc interface{}
	decoder := json.NewDecoder(bytes.NewReader(document))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("contracts: document is not valid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("contracts: document violates schema %q: %w", schemaKey, err)
	}
	return nil
}
