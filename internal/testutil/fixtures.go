// Package testutil provides test utilities and fixtures for unit tests.
//
// Fixtures are raw YAML sources rather than constructed documents so that
// every package, including parser itself, can use them without an import
// cycle.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/oasgraph/rawdoc"
)

// PetStoreOAS30 is a small OAS 3.0 document exercising path-level
// parameters, component references and a reference with ignored siblings.
const PetStoreOAS30 = `openapi: 3.0.3
info:
  title: Pet Store
  version: 1.0.0
servers:
  - url: https://api.example.com/v1
tags:
  - name: pets
  - name: store
paths:
  /pets/{petId}:
    parameters:
      - $ref: '#/components/parameters/PetId'
      - name: verbose
        in: query
    get:
      operationId: getPet
      tags: [pets]
      parameters:
        - name: verbose
          in: query
          description: operation level
      responses:
        '200':
          description: A pet
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
                description: ignored in 3.0
        default:
          $ref: '#/components/responses/Error'
    delete:
      operationId: deletePet
      responses:
        '204':
          description: Deleted
components:
  schemas:
    Pet:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
        status:
          type: string
          enum: [available, sold]
          x-internal: true
        owner:
          $ref: '#/components/schemas/Owner'
    Owner:
      type: object
      properties:
        name:
          type: string
    Error:
      type: object
      properties:
        message:
          type: string
  parameters:
    PetId:
      name: petId
      in: path
      required: true
      schema:
        type: integer
  responses:
    Error:
      description: Unexpected error
      content:
        application/json:
          schema:
            $ref: '#/components/schemas/Error'
`

// PetStoreOAS31 is an OAS 3.1 document with reference siblings and a
// webhook.
const PetStoreOAS31 = `openapi: 3.1.0
info:
  title: Pet Store
  version: 2.0.0
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - $ref: '#/components/parameters/Limit'
          description: How many pets to return
      responses:
        '200':
          description: Pets
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
                description: A pet with siblings
                maxProperties: 5
webhooks:
  newPet:
    post:
      operationId: newPetHook
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
      responses:
        '200':
          description: Acknowledged
components:
  schemas:
    Pet:
      type: [object, 'null']
      properties:
        name:
          type: string
  parameters:
    Limit:
      name: limit
      in: query
      description: Maximum number of items
      schema:
        type: integer
`

// PetStoreSwagger20 is a Swagger 2.0 document whose references use both the
// legacy and the modern component pointers.
const PetStoreSwagger20 = `swagger: '2.0'
info:
  title: Pet Store
  version: 1.0.0
host: api.example.com
basePath: /v1
schemes: [https]
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - $ref: '#/parameters/Limit'
      responses:
        '200':
          description: Pets
          schema:
            type: array
            items:
              $ref: '#/definitions/Pet'
definitions:
  Pet:
    type: object
    properties:
      name:
        type: string
      tag:
        $ref: '#/components/schemas/Tag'
  Tag:
    type: string
parameters:
  Limit:
    name: limit
    in: query
    type: integer
responses:
  NotFound:
    description: Not found
securityDefinitions:
  apiKey:
    type: apiKey
    name: X-API-Key
    in: header
`

// CircularSchemas holds two schemas referring to each other through their
// properties, and an alias pair referring to each other directly.
const CircularSchemas = `openapi: 3.0.3
info:
  title: Cycles
  version: 1.0.0
paths: {}
components:
  schemas:
    A:
      type: object
      properties:
        b:
          $ref: '#/components/schemas/B'
    B:
      type: object
      properties:
        a:
          $ref: '#/components/schemas/A'
    C:
      $ref: '#/components/schemas/D'
    D:
      $ref: '#/components/schemas/C'
    Leaf:
      type: string
`

// Decode decodes a YAML or JSON source into a raw tree, failing the test on
// error.
func Decode(t *testing.T, src string) any {
	t.Helper()

	raw, err := rawdoc.Decode([]byte(src))
	if err != nil {
		t.Fatalf("Failed to decode fixture: %v", err)
	}
	return raw
}

// WriteTempYAML writes a YAML source to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, src string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, []byte(src), 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON encodes a raw tree as JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, raw any) string {
	t.Helper()

	data, err := rawdoc.EncodeJSONIndent(raw, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
