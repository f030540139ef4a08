package models

// Result is the outcome flag carried by [ResponseOut].
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// ResponseOut is the generic acknowledgement body used by endpoints that do
// not return a resource. Detail is optional and may be null.
type ResponseOut struct {
	Result Result  `json:"result"`
	Detail *string `json:"detail,omitempty"`
}

// DeletedCount is returned by endpoints that delete a batch of records.
type DeletedCount struct {
	Deleted int `json:"deleted"`
}
