package model

// Module 学习路径下的章节，包含若干讲座和至多一个作业
// swagger:model Module
type Module struct {
	UUIDBase
	LearningPathID string      `gorm:"type:varchar(36);not null;index" json:"learningPathId"`
	Title          string      `gorm:"size:100;not null" json:"title"`
	Description    string      `gorm:"type:text" json:"description"`
	Lectures       []Lecture   `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"lectures,omitempty"`
	Assignment     *Assignment `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"assignment,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}

// swagger:model Lecture
type Lecture struct {
	UUIDBase
	ModuleID string `gorm:"type:varchar(36);not null;index" json:"moduleId"`
	Title    string `gorm:"size:100;not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	VideoURL string `gorm:"size:500" json:"videoUrl"`
}

func (Lecture) TableName() string {
	return "lectures"
}

// Assignment 模块作业，仅存静态元数据，不含判分逻辑
// swagger:model Assignment
type Assignment struct {
	UUIDBase
	ModuleID       string `gorm:"type:varchar(36);not null;uniqueIndex" json:"moduleId"`
	Name           string `gorm:"size:100;not null" json:"name"`
	Description    string `gorm:"type:text" json:"description"`
	TotalMarks     int    `gorm:"default:0" json:"totalMarks"`
	TotalQuestions int    `gorm:"default:0" json:"totalQuestions"`
	AttemptsCount  int    `gorm:"default:0" json:"attemptsCount"`
}

func (Assignment) TableName() string {
	return "assignments"
}
