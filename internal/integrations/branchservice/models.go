package branchservice

// Branch модель филиала из BranchService
type Branch struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"` // IANA, например Europe/London
	IsActive bool   `json:"is_active"`
}
