// Package wizard implements the quote wizard as an explicit state machine.
//
// The machine owns the in-progress selection and enforces the per-step
// gates; pricing stays in the catalog package and persistence in the
// submission service. State is serializable so it can live in a session
// store between requests.
package wizard

import (
	"regexp"
	"strings"

	"github.com/devaistudio/portfolio/internal/catalog"
)

type Step int

const (
	StepProjectType Step = iota + 1
	StepFeatures
	StepContact
)

func (s Step) String() string {
	switch s {
	case StepProjectType:
		return "project_type"
	case StepFeatures:
		return "features"
	case StepContact:
		return "contact"
	default:
		return "unknown"
	}
}

// ValidationError reports a blocked transition. It is surfaced inline to
// the user and never reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Selection is the accumulated user choices across steps 1-3.
type Selection struct {
	ProjectTypeID string           `json:"project_type_id"`
	FeatureIDs    []string         `json:"feature_ids"`
	Currency      catalog.Currency `json:"currency"`
	Contact       Contact          `json:"contact"`
}

// State is the wizard machine. Zero value is not usable; call New.
type State struct {
	Step      Step      `json:"step"`
	Selection Selection `json:"selection"`
	Submitted bool      `json:"submitted"`
}

func New() *State {
	return &State{
		Step: StepProjectType,
		Selection: Selection{
			Currency: catalog.CurrencyEUR,
		},
	}
}

// SelectProjectType records the project type choice. Allowed at any step;
// it does not reset accumulated features.
func (s *State) SelectProjectType(id string) {
	s.Selection.ProjectTypeID = id
}

// ToggleFeature adds the feature id to the selection, or removes it when
// already selected. Returns true if the feature is selected afterwards.
func (s *State) ToggleFeature(id string) bool {
	for i, existing := range s.Selection.FeatureIDs {
		if existing == id {
			s.Selection.FeatureIDs = append(s.Selection.FeatureIDs[:i], s.Selection.FeatureIDs[i+1:]...)
			return false
		}
	}
	s.Selection.FeatureIDs = append(s.Selection.FeatureIDs, id)
	return true
}

// SetCurrency switches the active price column. Available at any step and
// preserves all selections.
func (s *State) SetCurrency(currency catalog.Currency) {
	s.Selection.Currency = currency
}

func (s *State) SetContact(contact Contact) {
	s.Selection.Contact = contact
}

// Next advances to the following step, enforcing the step gate.
func (s *State) Next() error {
	switch s.Step {
	case StepProjectType:
		if strings.TrimSpace(s.Selection.ProjectTypeID) == "" {
			return &ValidationError{Field: "project_type", Message: "choisissez un type de projet pour continuer"}
		}
		s.Step = StepFeatures
	case StepFeatures:
		// Zero features is a valid selection.
		s.Step = StepContact
	}
	return nil
}

// Back returns to the previous step, preserving all accumulated state.
func (s *State) Back() {
	if s.Step > StepProjectType {
		s.Step--
	}
}

// Finalize validates the contact gate on the last step. On success the
// caller hands the selection snapshot to the submission service; MarkSubmitted
// is called only after the service reports success.
func (s *State) Finalize() error {
	if s.Submitted {
		return &ValidationError{Field: "state", Message: "cette demande a deja ete envoyee"}
	}
	if s.Step != StepContact {
		return &ValidationError{Field: "step", Message: "completez les etapes precedentes avant d'envoyer"}
	}
	if strings.TrimSpace(s.Selection.Contact.Name) == "" {
		return &ValidationError{Field: "name", Message: "votre nom est requis"}
	}
	email := strings.TrimSpace(s.Selection.Contact.Email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "votre adresse email est requise"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "adresse email invalide"}
	}
	return nil
}

// MarkSubmitted moves the machine to its terminal state. A failed
// submission leaves the machine on the contact step with its data intact.
func (s *State) MarkSubmitted() {
	s.Submitted = true
}
