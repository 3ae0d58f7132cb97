package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// [[file:path.ext]] with no label
var orgImageRe = regexp.MustCompile(`\[\[file:([^\]]+?\.(?:png|jpg|jpeg|gif))\]\]`)

// imageMarker stands in for an image embed while links are rewritten
type imageMarker struct {
	MarkerID string // Unique placeholder: "ORG2COSMA_IMG_abc123"
	Original string // Original org syntax
	Embed    string // Markdown embed
}

// ConvertImages rewrites [[file:img.png]] to ![](img.png)
func ConvertImages(content string) string {
	return orgImageRe.ReplaceAllString(content, "![]($1)")
}

// protectImages swaps image links for markers so the link pass cannot
// mistake them for file links to notes
func protectImages(content string) (string, []imageMarker) {
	var markers []imageMarker

	result := orgImageRe.ReplaceAllStringFunc(content, func(match string) string {
		marker := imageMarker{
			MarkerID: fmt.Sprintf("ORG2COSMA_IMG_%s", strings.ReplaceAll(uuid.New().String(), "-", "")),
			Original: match,
			Embed:    ConvertImages(match),
		}
		markers = append(markers, marker)
		return marker.MarkerID
	})

	return result, markers
}

// restoreImages replaces markers with their embeds
func restoreImages(content string, markers []imageMarker) string {
	result := content
	for _, marker := range markers {
		result = strings.Replace(result, marker.MarkerID, marker.Embed, 1)
	}
	return result
}
