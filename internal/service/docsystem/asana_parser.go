package docsystem

import (
	"regexp"
	"strings"

	models "yogablocks/internal/domain/models/docsystem"
)

// asanaSection identifies a recognized section marker
type asanaSection int

const (
	sectionNone asanaSection = iota
	sectionSanskrit
	sectionCategory
	sectionBenefits
	sectionContraindications
	sectionModifications
	sectionPreparatoryPoses
)

// Section marker labels, in read view order
const (
	LabelSanskritName      = "Sanskrit Name"
	LabelCategory          = "Category"
	LabelBenefits          = "Benefits"
	LabelContraindications = "Contraindications"
	LabelModifications     = "Modifications"
	LabelPreparatoryPoses  = "Preparatory Poses"
)

var sectionMarkers = map[string]asanaSection{
	strings.ToLower(LabelSanskritName):      sectionSanskrit,
	strings.ToLower(LabelCategory):          sectionCategory,
	strings.ToLower(LabelBenefits):          sectionBenefits,
	strings.ToLower(LabelContraindications): sectionContraindications,
	strings.ToLower(LabelModifications):     sectionModifications,
	strings.ToLower(LabelPreparatoryPoses):  sectionPreparatoryPoses,
}

var (
	headingLine = regexp.MustCompile(`^#{1,6}\s+(.*?)\s*#*\s*$`)
	bulletLine  = regexp.MustCompile(`^(?:[-*+]|\d+[.)])\s+(.*)$`)
	fenceLine   = regexp.MustCompile("^(```|~~~)")
)

// isList reports whether the section collects items rather than one value
func (s asanaSection) isList() bool {
	return s >= sectionBenefits
}

// ParseAsanaContent reads the section-marker convention out of a document body.
//
// A marker is recognized as "Marker: value", as "Marker:" followed by bullets,
// or as a heading "## Marker" followed by one value line or by bullets. Bold
// markers are ignored. Lines outside any section are kept in order in
// RemainingText, as are fenced code blocks, which are never read for markers.
// When no marker is found the content is returned untouched as RemainingText.
func ParseAsanaContent(content string) models.ParsedAsana {
	var parsed models.ParsedAsana
	var remaining []string

	current := sectionNone
	inFence := false

	for _, raw := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)

		if fenceLine.MatchString(line) {
			inFence = !inFence
			current = sectionNone
			remaining = append(remaining, raw)
			continue
		}
		if inFence {
			remaining = append(remaining, raw)
			continue
		}

		if line == "" {
			if current == sectionNone {
				remaining = append(remaining, raw)
			}
			continue
		}

		if m := headingLine.FindStringSubmatch(line); m != nil {
			label := strings.TrimSuffix(strings.TrimSpace(stripBold(m[1])), ":")
			if section, ok := sectionMarkers[strings.ToLower(strings.TrimSpace(label))]; ok {
				current = section
				parsed.Structured = true
				continue
			}
			current = sectionNone
			remaining = append(remaining, raw)
			continue
		}

		if section, value, ok := markerLine(line); ok {
			parsed.Structured = true
			current = section
			if value != "" {
				setSectionValue(&parsed, section, value)
				if !section.isList() {
					current = sectionNone
				}
			}
			continue
		}

		if current != sectionNone {
			if m := bulletLine.FindStringSubmatch(line); m != nil {
				setSectionValue(&parsed, current, stripBold(m[1]))
				if !current.isList() {
					current = sectionNone
				}
				continue
			}

			if !sectionHasValue(&parsed, current) {
				// Single value line directly under a marker
				setSectionValue(&parsed, current, stripBold(line))
				current = sectionNone
				continue
			}

			current = sectionNone
		}

		remaining = append(remaining, raw)
	}

	if !parsed.Structured {
		parsed.RemainingText = content
		return parsed
	}

	parsed.RemainingText = strings.Trim(strings.Join(remaining, "\n"), "\n")
	return parsed
}

// markerLine recognizes "Marker: value" and "**Marker:** value"
func markerLine(line string) (asanaSection, string, bool) {
	plain := stripBold(line)
	idx := strings.Index(plain, ":")
	if idx <= 0 {
		return sectionNone, "", false
	}

	section, ok := sectionMarkers[strings.ToLower(strings.TrimSpace(plain[:idx]))]
	if !ok {
		return sectionNone, "", false
	}
	return section, strings.TrimSpace(plain[idx+1:]), true
}

func setSectionValue(parsed *models.ParsedAsana, section asanaSection, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	switch section {
	case sectionSanskrit:
		parsed.Sanskrit = value
	case sectionCategory:
		parsed.Category = value
	case sectionBenefits:
		parsed.Benefits = append(parsed.Benefits, value)
	case sectionContraindications:
		parsed.Contraindications = append(parsed.Contraindications, value)
	case sectionModifications:
		parsed.Modifications = append(parsed.Modifications, value)
	case sectionPreparatoryPoses:
		parsed.PreparatoryPoses = append(parsed.PreparatoryPoses, value)
	}
}

func sectionHasValue(parsed *models.ParsedAsana, section asanaSection) bool {
	switch section {
	case sectionSanskrit:
		return parsed.Sanskrit != ""
	case sectionCategory:
		return parsed.Category != ""
	case sectionBenefits:
		return len(parsed.Benefits) > 0
	case sectionContraindications:
		return len(parsed.Contraindications) > 0
	case sectionModifications:
		return len(parsed.Modifications) > 0
	case sectionPreparatoryPoses:
		return len(parsed.PreparatoryPoses) > 0
	}
	return false
}

func stripBold(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
