package formatter

import (
	"fmt"
	"strings"

	"github.com/gcioc/h5-image-extractor/pkg/extractor"
	"github.com/gcioc/h5-image-extractor/pkg/stack"
)

// ToMarkdown renders an extraction run as a markdown report: the source
// file summary, the assembled result shape, and a per-image table with
// each dataset's path, shape, and element type.
func ToMarkdown(sum extractor.Summary, res *stack.Result) string {
	var sb strings.Builder

	sb.WriteString("# HDF5 Image Extraction Report\n\n")

	sb.WriteString("## Source File\n\n")
	sb.WriteString(fmt.Sprintf("- **Path**: `%s`\n", sum.FilePath))
	sb.WriteString(fmt.Sprintf("- **Images found**: %d\n", sum.TotalImages))
	if res != nil {
		sb.WriteString(fmt.Sprintf("- **Images extracted**: %d\n", res.Len()))
	}
	sb.WriteString("\n")

	if res == nil || res.Len() == 0 {
		sb.WriteString("No images were extracted.\n")
		return sb.String()
	}

	sb.WriteString("## Result\n\n")
	if res.Uniform {
		sb.WriteString(fmt.Sprintf("Uniform stack of shape `%s`, element type `%s` (%d bytes).\n\n",
			formatShape(res.Shape), res.Elem, len(res.Data)))
	} else {
		sb.WriteString("Heterogeneous sequence: the images do not share a single shape and element type.\n\n")
	}

	sb.WriteString("## Images\n\n")
	sb.WriteString("| # | Dataset | Shape | Element Type |\n")
	sb.WriteString("|---|---------|-------|--------------|\n")
	for i, im := range res.Images {
		elem := "unknown"
		if im.Elem != nil {
			elem = im.Elem.String()
		}
		sb.WriteString(fmt.Sprintf("| %d | `%s` | `%s` | `%s` |\n",
			i+1, im.Path, formatShape(im.Shape), elem))
	}

	return sb.String()
}

// formatShape renders a shape as "(4, 4)".
func formatShape(shape []uint64) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
