package export

import "regexp"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename derives the download name for a quotation PDF. The catalog
// name is used as-is; a non-empty company name is appended with
// whitespace runs collapsed to single underscores.
func Filename(catalogName, companyName string) string {
	name := catalogName + "_seleccionados"
	if companyName != "" {
		name += "_" + whitespaceRun.ReplaceAllString(companyName, "_")
	}
	return name + ".pdf"
}
