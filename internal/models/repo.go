package models

// Repo identifies one repository owned by the authenticated account.
// Everything here is transient: built from a listing response (or a push
// event identifier) and discarded when the run ends.
type Repo struct {
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
}
