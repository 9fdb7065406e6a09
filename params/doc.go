// Package params converts parameter models to and from the flat query
// format used by the Steadysun API.
//
// A model is a plain struct. Its Schema lists each wire key with explicit
// conversions, so no reflection is involved:
//
//	type siteParams struct {
//		Name   string
//		Fields []string
//	}
//
//	var siteSchema = params.NewSchema(
//		params.String("name", func(p *siteParams) *string { return &p.Name }),
//		params.StringList("fields", func(p *siteParams) *[]string { return &p.Fields }),
//	)
//
//	values := siteSchema.ToParams(&siteParams{Name: "roof", Fields: []string{"ghi", "t2m"}})
//	// values == params.Values{"name": "roof", "fields": "ghi,t2m"}
//
//	back, err := siteSchema.FromParams(values)
//
// FromParams(ToParams(m)) reproduces m for every field type offered here.
package params
