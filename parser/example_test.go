package parser_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/erraggy/oasgraph/oaserrors"
	"github.com/erraggy/oasgraph/parser"
)

const petStore = `openapi: 3.0.3
info:
  title: Pet Store
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        '200':
          description: Pets
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
        parent:
          $ref: '#/components/schemas/Pet'
`

// Example demonstrates basic parsing of an OpenAPI document.
func Example() {
	doc, err := parser.ParseBytes([]byte(petStore))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Title: %s\n", doc.Info.Title)
	fmt.Printf("Version: %s\n", doc.Version())
	fmt.Printf("Dialect: %s\n", doc.Dialect())
	fmt.Printf("Paths: %d\n", doc.Paths.Len())
	// Output:
	// Title: Pet Store
	// Version: 3.0.3
	// Dialect: oas-3.0
	// Paths: 1
}

// Example_resolveReference demonstrates resolving a local reference without
// following the references inside the target.
func Example_resolveReference() {
	doc, err := parser.ParseBytes([]byte(petStore))
	if err != nil {
		log.Fatal(err)
	}
	n, err := doc.ResolveReference("#/components/schemas/Pet", false)
	if err != nil {
		log.Fatal(err)
	}
	pet := n.(*parser.Schema)
	fmt.Println("Kind:", pet.Kind())
	fmt.Println("Types:", pet.Types())
	fmt.Println("Parent ref:", pet.Properties["parent"].Ref.Ref)
	// Output:
	// Kind: Schema
	// Types: [object]
	// Parent ref: #/components/schemas/Pet
}

// Example_circularReference demonstrates detecting a reference cycle.
func Example_circularReference() {
	doc, err := parser.ParseBytes([]byte(petStore))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Circular:", doc.IsCircularReference("#/components/schemas/Pet"))

	_, err = doc.ResolveReference("#/components/schemas/Pet", true)
	var refErr *oaserrors.ReferenceError
	if errors.As(err, &refErr) && refErr.IsCircular {
		fmt.Println("Cycle:", refErr.Cycle)
	}
	// Output:
	// Circular: true
	// Cycle: [#/components/schemas/Pet #/components/schemas/Pet]
}

// Example_operations demonstrates finding operations and listing references.
func Example_operations() {
	doc, err := parser.ParseBytes([]byte(petStore))
	if err != nil {
		log.Fatal(err)
	}
	op := doc.OperationByOperationID("listPets")
	fmt.Println(op.Method, op.Path)
	for _, ref := range doc.GetAllReferences() {
		fmt.Println(ref.Ref, ref.Name())
	}
	// Output:
	// get /pets
	// #/components/schemas/Pet Pet
	// #/components/schemas/Pet Pet
}

// Example_constructNode demonstrates building a single node and writing it
// back out. Declared keywords come first and extensions follow in key order.
func Example_constructNode() {
	raw := map[string]any{
		"x-internal": true,
		"required":   []any{"id"},
		"properties": map[string]any{
			"id": map[string]any{"type": "integer"},
		},
		"type": "object",
	}
	n, err := parser.ConstructNode(parser.KindSchema, raw, parser.OASVersion303)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(parser.HasExtension(n, "internal"))

	out, err := parser.MarshalJSON(n)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
	// Output:
	// true
	// {"type":"object","properties":{"id":{"type":"integer"}},"required":["id"],"x-internal":true}
}

// Example_functionalOptions demonstrates configuring construction with
// options.
func Example_functionalOptions() {
	_, err := parser.ParseBytes([]byte(petStore), parser.WithMaxRefDepth(-1))
	fmt.Println(errors.Is(err, oaserrors.ErrConfig))

	doc, err := parser.ParseBytes([]byte(petStore),
		parser.WithResolutionCache(true),
		parser.WithMaxRefDepth(10),
	)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(doc.Stats().ReferenceCount)
	// Output:
	// true
	// 2
}
