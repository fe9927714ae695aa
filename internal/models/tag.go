package models

// TagValue is one entry in a tag's ordered value list. ID is zero until
// the backend persists the value.
type TagValue struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

// TagAssignee links a tag to a user for display purposes.
type TagAssignee struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type Tag struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Values    []TagValue    `json:"values"`
	Assignees []TagAssignee `json:"assignees"`
}
