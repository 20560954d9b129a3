package dto

type CreatePlanRequest struct {
	Title       string `json:"title"`
	CreatorID   string `json:"creator_id"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	MaxMembers  int    `json:"max_members"`
}

type JoinPlanRequest struct {
	PlanID    uint   `json:"plan_id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}
