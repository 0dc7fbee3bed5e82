package docsystem

// ParsedAsana is the structured reading of an asana document body.
type ParsedAsana struct {
	Sanskrit          string   `json:"sanskrit,omitempty"`
	Category          string   `json:"category,omitempty"`
	Benefits          []string `json:"benefits,omitempty"`
	Contraindications []string `json:"contraindications,omitempty"`
	Modifications     []string `json:"modifications,omitempty"`
	PreparatoryPoses  []string `json:"preparatory_poses,omitempty"`
	RemainingText     string   `json:"remaining_text,omitempty"` // Lines that matched no section, in order
	Structured        bool     `json:"structured"`               // At least one section marker was recognized
}

// PoseRef is a preparatory pose entry, navigable when TargetID is set.
type PoseRef struct {
	Text     string `json:"text"`
	TargetID string `json:"target_id,omitempty"`
}

// ReadViewField is one rendered section of the read view.
type ReadViewField struct {
	Label string    `json:"label"`
	Value string    `json:"value,omitempty"` // Single value sections
	Items []string  `json:"items,omitempty"` // Bulleted sections
	Poses []PoseRef `json:"poses,omitempty"` // Preparatory poses only
}

// ReadView is the display form of a stored document.
type ReadView struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	DocType       DocType         `json:"doc_type"`
	Structured    bool            `json:"structured"`
	Fields        []ReadViewField `json:"fields"`
	RemainingHTML string          `json:"remaining_html,omitempty"`
	Backlinks     []Link          `json:"backlinks"`
}
