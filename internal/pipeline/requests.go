package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/tailor-agent/internal/rendering"
	"github.com/jonathan/tailor-agent/internal/schemas"
	"github.com/jonathan/tailor-agent/internal/types"
)

var validate = validator.New()

// LoadTailorRequest reads a tailoring request file, checks it against the
// request schema when the schema can be found, and validates the result.
// Tailored text and skills with unbalanced braces are rejected.
func LoadTailorRequest(path string) (*types.TailorRequest, error) {
	var req types.TailorRequest
	if err := loadJSON(path, schemas.TailorRequestSchema, &req); err != nil {
		return nil, err
	}
	for _, s := range req.Sections {
		for i, b := range s.Bullets {
			if err := rendering.CheckBraces(b.TailoredText); err != nil {
				return nil, fmt.Errorf("invalid content in %s: %s bullet %d: %w", path, s.Label, i+1, err)
			}
		}
	}
	if err := rendering.CheckBraces(req.Skills); err != nil {
		return nil, fmt.Errorf("invalid content in %s: skills: %w", path, err)
	}
	return &req, nil
}

// LoadCoverLetterInput reads the cover letter content file proposed by the agent
func LoadCoverLetterInput(path string) (*types.CoverLetterInput, error) {
	var input types.CoverLetterInput
	if err := loadJSON(path, schemas.CoverLetterSchema, &input); err != nil {
		return nil, err
	}
	return &input, nil
}

func loadJSON(path, schema string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if schemaPath := schemas.ResolveSchemaPath(schema); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			return fmt.Errorf("%s does not match %s: %w", path, schema, err)
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("invalid content in %s: %w", path, err)
	}
	return nil
}
