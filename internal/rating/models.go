package rating

// Rating is the aggregate counter row for one tool. ToolName is stored
// case-folded, so "PDF-Merge" and "pdf-merge" share one aggregate. Rows are
// never deleted.
type Rating struct {
	ToolName   string `gorm:"primaryKey" json:"tool_name"`
	Votes      int    `gorm:"not null;default:0" json:"votes"`
	TotalScore int    `gorm:"not null;default:0" json:"total_score"`
}

func (Rating) TableName() string { return "app_rating.ratings" }
