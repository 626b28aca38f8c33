package parser

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExtractProperties reads the core and extended document properties that
// are set, keyed the way sheetpack names them.
func ExtractProperties(f *excelize.File) (map[string]string, error) {
	props := make(map[string]string)
	put := func(key, value string) {
		if value != "" {
			props[key] = value
		}
	}

	core, err := f.GetDocProps()
	if err != nil {
		return nil, err
	}
	put("title", core.Title)
	put("subject", core.Subject)
	put("creator", core.Creator)
	put("keywords", core.Keywords)
	put("description", core.Description)
	put("lastModifiedBy", core.LastModifiedBy)
	put("category", core.Category)
	put("created", core.Created)
	put("modified", core.Modified)

	app, err := f.GetAppProps()
	if err != nil {
		return nil, err
	}
	put("Application", app.Application)
	put("Company", app.Company)
	put("AppVersion", app.AppVersion)
	put("DocSecurity", strconv.Itoa(app.DocSecurity))
	put("ScaleCrop", strconv.FormatBool(app.ScaleCrop))
	put("LinksUpToDate", strconv.FormatBool(app.LinksUpToDate))
	put("HyperlinksChanged", strconv.FormatBool(app.HyperlinksChanged))

	return props, nil
}
