package export

import "fmt"

// Dataset is a titled table ready to be rendered into a downloadable file.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewDataset starts an empty dataset with the given column headers.
func NewDataset(title string, headers ...string) *Dataset {
	return &Dataset{Title: title, Headers: headers}
}

// AddRow appends one record. Missing trailing cells are rendered blank.
func (d *Dataset) AddRow(values ...string) error {
	if len(values) > len(d.Headers) {
		return fmt.Errorf("row has %d values for %d columns", len(values), len(d.Headers))
	}
	row := make([]string, len(d.Headers))
	copy(row, values)
	d.Rows = append(d.Rows, row)
	return nil
}

func (d Dataset) validate() error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("dataset requires at least one header")
	}
	return nil
}
