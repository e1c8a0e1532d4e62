package models

// ContentType describes the payload format of a deliverable.
type ContentType string

const (
	// ContentTypeMarkdown is a markdown text document.
	ContentTypeMarkdown ContentType = "markdown"
	// ContentTypeImage is a base64-encoded image data URI.
	ContentTypeImage ContentType = "image"
	// ContentTypeText is plain text.
	ContentTypeText ContentType = "text"
)

// Valid returns true if the content type is a known value.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeMarkdown, ContentTypeImage, ContentTypeText:
		return true
	default:
		return false
	}
}

// Deliverable is the output of executing one work item.
type Deliverable struct {
	// ID is the unique identifier for this deliverable.
	ID string `json:"id"`
	// WorkItemID is the work item that produced it.
	WorkItemID string `json:"work_item_id"`
	// Name is a display name, typically "<Brand>_<Kind>".
	Name string `json:"name"`
	// Capability is the producing capability.
	Capability Capability `json:"capability"`
	// Type is the payload format.
	Type ContentType `json:"type"`
	// Content is the payload: text, markdown, or an encoded image.
	Content string `json:"content"`
	// Tier records which fallback tier produced the result.
	Tier Tier `json:"tier"`
	// Model is the backing model that produced the content, if remote.
	Model string `json:"model,omitempty"`
}

// ExecutionStatus is the overall outcome of executing a plan.
type ExecutionStatus string

const (
	// ExecutionCompleted means at least one deliverable was produced.
	ExecutionCompleted ExecutionStatus = "completed"
	// ExecutionFailed means no deliverable was produced.
	ExecutionFailed ExecutionStatus = "failed"
)
