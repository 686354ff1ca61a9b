package domain

// Gender selects which exemptions apply to a profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	}
	return false
}

// Age bounds accepted for a profile.
const (
	MinAge = 1
	MaxAge = 120
)

// Profile is the per-user identity record kept by the remote ledger.
// Identifier is the immutable key and the only credential.
type Profile struct {
	Identifier  string `json:"gmail"`
	DisplayName string `json:"name"`
	Age         int    `json:"age"`
	Gender      Gender `json:"gender"`

	// LifetimeQazaCount is set only by an explicit save of a Qaza estimate.
	LifetimeQazaCount *int `json:"qazaCount,omitempty"`
}
