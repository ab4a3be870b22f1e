package content

import (
	"time"

	yaml "gopkg.in/yaml.v3"

	"epb/common"
)

type metadataYAML struct {
	Title       string   `yaml:"title"`
	Authors     []string `yaml:"authors"`
	Language    string   `yaml:"language"`
	Description string   `yaml:"description"`
	Subjects    []string `yaml:"subjects"`
	License     string   `yaml:"license"`
	Date        string   `yaml:"date"`
	Identifier  string   `yaml:"identifier"`
}

// MetadataFromYAML builds a Metadata store from a calibre-style YAML
// metadata document. Fields absent from the document keep their
// defaults; every present field goes through the same validation as the
// setter calls.
func MetadataFromYAML(data []byte) (*Metadata, error) {
	var in metadataYAML
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, common.Validationf("unable to parse metadata document: %v", err)
	}

	m := NewMetadata()
	if in.Title != "" {
		if err := m.SetTitle(in.Title); err != nil {
			return nil, err
		}
	}
	for _, a := range in.Authors {
		if err := m.AddAuthor(a); err != nil {
			return nil, err
		}
	}
	if in.Language != "" {
		if err := m.SetLanguage(in.Language); err != nil {
			return nil, err
		}
	}
	m.AddDescription(in.Description)
	for _, s := range in.Subjects {
		m.AddSubject(s)
	}
	m.License = in.License
	if in.Date != "" {
		d, err := parseMetadataDate(in.Date)
		if err != nil {
			return nil, err
		}
		m.Date = d
	}
	if in.Identifier != "" {
		if err := m.SetIdentifier(in.Identifier); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func parseMetadataDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if d, err := time.Parse(layout, value); err == nil {
			return d, nil
		}
	}
	return time.Time{}, common.Validationf("unable to parse metadata date %q", value)
}
