package state

import "sort"

// RepairAction says how to fix the active profile pointer after loading.
type RepairAction int

const (
	// RepairNone means the active profile exists.
	RepairNone RepairAction = iota
	// RepairCreate means a new profile must be created and activated.
	RepairCreate
	// RepairReassign means an existing profile must be activated.
	RepairReassign
)

func (a RepairAction) String() string {
	switch a {
	case RepairNone:
		return "none"
	case RepairCreate:
		return "create"
	case RepairReassign:
		return "reassign"
	default:
		return "unknown"
	}
}

// Repair is the outcome of PlanRepair.
type Repair struct {
	Action RepairAction
	// ProfileID is the profile to activate for RepairReassign.
	ProfileID string
}

// PlanRepair decides how to resolve an impossible active profile pointer.
// Such states come from another instance deleting the active profile, or
// from a first launch where nothing was stored yet.
func PlanRepair(activeID string, profileIDs []string) Repair {
	if activeID == "" || len(profileIDs) == 0 {
		return Repair{Action: RepairCreate}
	}
	for _, id := range profileIDs {
		if id == activeID {
			return Repair{Action: RepairNone}
		}
	}
	ids := append([]string(nil), profileIDs...)
	sort.Strings(ids)
	return Repair{Action: RepairReassign, ProfileID: ids[0]}
}

// ProfileIDs returns the ids of all loaded profiles, sorted.
func (s *State) ProfileIDs() []string {
	ids := make([]string, 0, len(s.Profiles))
	for id := range s.Profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
