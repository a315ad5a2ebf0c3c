package contract

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/spacehash/portal/internal/errl"
)

// pdfEngine is the pdfcpu-backed formEngine. The library is treated as a
// black box: fill text fields by name, serialize to bytes.
type pdfEngine struct{}

// formDocument mirrors the subset of pdfcpu's form JSON that the filler
// needs. Only text fields are written; the contract template has no other
// fillable field types.
type formDocument struct {
	Forms []formFields `json:"forms"`
}

type formFields struct {
	TextFields []textField `json:"textfield"`
}

type textField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Locked bool   `json:"locked"`
}

func (pdfEngine) FieldNames(template []byte) ([]string, error) {
	conf := model.NewDefaultConfiguration()

	var exported bytes.Buffer
	if err := api.ExportFormJSON(bytes.NewReader(template), &exported, "contract", conf); err != nil {
		return nil, errl.Errorf("exporting template form: %w", err)
	}

	var doc formDocument
	if err := json.Unmarshal(exported.Bytes(), &doc); err != nil {
		return nil, errl.Errorf("decoding exported form: %w", err)
	}

	var names []string
	for _, form := range doc.Forms {
		for _, field := range form.TextFields {
			names = append(names, field.Name)
		}
	}
	return names, nil
}

func (pdfEngine) Fill(template []byte, values map[string]string) ([]byte, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	form := formFields{TextFields: make([]textField, 0, len(names))}
	for _, name := range names {
		form.TextFields = append(form.TextFields, textField{Name: name, Value: values[name]})
	}

	payload, err := json.Marshal(formDocument{Forms: []formFields{form}})
	if err != nil {
		return nil, errl.Error(err)
	}

	var filled bytes.Buffer
	conf := model.NewDefaultConfiguration()
	if err := api.FillForm(bytes.NewReader(template), bytes.NewReader(payload), &filled, conf); err != nil {
		return nil, errl.Errorf("filling form: %w", err)
	}
	return filled.Bytes(), nil
}
