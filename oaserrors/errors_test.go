package oaserrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestMalformedDocumentError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &MalformedDocumentError{
			Path:    "/components/schemas/Pet/properties",
			Kind:    "Schema",
			Message: "expected mapping, got list",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "malformed document (Schema) at /components/schemas/Pet/properties: expected mapping, got list: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &MalformedDocumentError{}
		if err.Error() != "malformed document" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with path only", func(t *testing.T) {
		err := &MalformedDocumentError{Path: "/paths"}
		if err.Error() != "malformed document at /paths" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &MalformedDocumentError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrMalformedDocument", func(t *testing.T) {
		err := &MalformedDocumentError{Message: "test"}
		if !errors.Is(err, ErrMalformedDocument) {
			t.Error("MalformedDocumentError should match ErrMalformedDocument")
		}
	})

	t.Run("Is does not match other sentinels", func(t *testing.T) {
		err := &MalformedDocumentError{}
		if errors.Is(err, ErrReference) {
			t.Error("MalformedDocumentError should not match ErrReference")
		}
		if errors.Is(err, ErrConfig) {
			t.Error("MalformedDocumentError should not match ErrConfig")
		}
	})

	t.Run("As extracts MalformedDocumentError", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &MalformedDocumentError{Path: "/info", Kind: "Info"})
		var mdErr *MalformedDocumentError
		if !errors.As(err, &mdErr) {
			t.Fatal("errors.As should succeed")
		}
		if mdErr.Path != "/info" {
			t.Errorf("unexpected path: %s", mdErr.Path)
		}
		if mdErr.Kind != "Info" {
			t.Errorf("unexpected kind: %s", mdErr.Kind)
		}
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("Error message for normal reference error", func(t *testing.T) {
		err := &ReferenceError{
			Ref:     "#/components/schemas/Pet",
			RefType: "local",
			Message: "bad pointer",
		}
		expected := "reference error: #/components/schemas/Pet: bad pointer"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message for missing target", func(t *testing.T) {
		err := &ReferenceError{
			Ref:        "#/tags/5",
			IsNotFound: true,
			Message:    "index 5 out of range at /tags",
		}
		expected := "reference not found: #/tags/5: index 5 out of range at /tags"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message for circular reference with cycle", func(t *testing.T) {
		err := &ReferenceError{
			Ref:        "#/components/schemas/A",
			IsCircular: true,
			Cycle:      []string{"#/components/schemas/A", "#/components/schemas/B", "#/components/schemas/A"},
		}
		expected := "circular reference: #/components/schemas/A (#/components/schemas/A -> #/components/schemas/B -> #/components/schemas/A)"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message for unsupported reference", func(t *testing.T) {
		err := &ReferenceError{
			Ref:           "other.yaml#/components/schemas/Pet",
			RefType:       "file",
			IsUnsupported: true,
		}
		expected := "unsupported reference: other.yaml#/components/schemas/Pet"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with cause", func(t *testing.T) {
		cause := errors.New("index out of range")
		err := &ReferenceError{
			Ref:   "#/tags/9",
			Cause: cause,
		}
		if msg := err.Error(); msg != "reference error: #/tags/9: index out of range" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("walk failed")
		err := &ReferenceError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrReference", func(t *testing.T) {
		err := &ReferenceError{Ref: "test"}
		if !errors.Is(err, ErrReference) {
			t.Error("ReferenceError should match ErrReference")
		}
	})

	t.Run("Is matches flag sentinels only when flag set", func(t *testing.T) {
		tests := []struct {
			name     string
			err      *ReferenceError
			sentinel error
			want     bool
		}{
			{"circular set", &ReferenceError{IsCircular: true}, ErrCircularReference, true},
			{"circular unset", &ReferenceError{}, ErrCircularReference, false},
			{"not found set", &ReferenceError{IsNotFound: true}, ErrReferenceNotFound, true},
			{"not found unset", &ReferenceError{}, ErrReferenceNotFound, false},
			{"unsupported set", &ReferenceError{IsUnsupported: true}, ErrUnsupportedReference, true},
			{"unsupported unset", &ReferenceError{}, ErrUnsupportedReference, false},
			{"not found is not circular", &ReferenceError{IsNotFound: true}, ErrCircularReference, false},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := errors.Is(tt.err, tt.sentinel); got != tt.want {
					t.Errorf("errors.Is() = %v, want %v", got, tt.want)
				}
				if !errors.Is(tt.err, ErrReference) {
					t.Error("every ReferenceError should match ErrReference")
				}
			})
		}
	})

	t.Run("As extracts ReferenceError", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &ReferenceError{
			Ref:        "#/components/schemas/X",
			IsCircular: true,
			Cycle:      []string{"#/components/schemas/X", "#/components/schemas/X"},
		})
		var refErr *ReferenceError
		if !errors.As(err, &refErr) {
			t.Fatal("errors.As should succeed")
		}
		if !refErr.IsCircular {
			t.Error("IsCircular should be true")
		}
		if len(refErr.Cycle) != 2 {
			t.Errorf("unexpected cycle length: %d", len(refErr.Cycle))
		}
	})
}

func TestResourceLimitError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ResourceLimitError{
			ResourceType: "ref_depth",
			Limit:        100,
			Actual:       101,
			Message:      "expansion too deep",
		}
		expected := "resource limit exceeded: ref_depth (limit: 100, actual: 101): expansion too deep"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message without actual", func(t *testing.T) {
		err := &ResourceLimitError{ResourceType: "ref_depth", Limit: 10}
		expected := "resource limit exceeded: ref_depth (limit: 10)"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns nil", func(t *testing.T) {
		err := &ResourceLimitError{}
		if err.Unwrap() != nil {
			t.Error("Unwrap should return nil")
		}
	})

	t.Run("Is matches ErrResourceLimit", func(t *testing.T) {
		err := &ResourceLimitError{}
		if !errors.Is(err, ErrResourceLimit) {
			t.Error("ResourceLimitError should match ErrResourceLimit")
		}
		if errors.Is(err, ErrReference) {
			t.Error("ResourceLimitError should not match ErrReference")
		}
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("must be positive")
		err := &ConfigError{
			Option:  "MaxRefDepth",
			Value:   -1,
			Message: "invalid depth",
			Cause:   cause,
		}
		expected := "configuration error for MaxRefDepth (value: -1): invalid depth: must be positive"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ConfigError{}
		if err.Error() != "configuration error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("nope")
		err := &ConfigError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrConfig", func(t *testing.T) {
		err := &ConfigError{}
		if !errors.Is(err, ErrConfig) {
			t.Error("ConfigError should match ErrConfig")
		}
	})
}
