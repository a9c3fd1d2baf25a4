package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	AttemptStatusNotStarted   = "not_started"
	AttemptStatusNotAttempted = "not_attempted"
	AttemptStatusInProgress   = "in_progress"
	AttemptStatusCompleted    = "completed"
)

// LectureProgress 用户对单个讲座的观看状态，进度汇总的叶子事实
// swagger:model LectureProgress
type LectureProgress struct {
	BaseModel
	UserID      string     `gorm:"size:255;not null;index:idx_user_lecture,unique" json:"userId"`
	LectureID   string     `gorm:"type:varchar(36);not null;index:idx_user_lecture,unique" json:"lectureId"`
	IsViewed    bool       `gorm:"default:false" json:"isViewed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (LectureProgress) TableName() string {
	return "lecture_progresses"
}

// ModuleProgress 模块级汇总：progress = 100 × 已观看讲座数 / 讲座总数
// swagger:model ModuleProgress
type ModuleProgress struct {
	BaseModel
	UserID      string  `gorm:"size:255;not null;index:idx_user_module,unique" json:"userId"`
	ModuleID    string  `gorm:"type:varchar(36);not null;index:idx_user_module,unique" json:"moduleId"`
	Progress    float64 `gorm:"default:0" json:"progress"`
	IsCompleted bool    `gorm:"default:false" json:"isCompleted"`
}

func (ModuleProgress) TableName() string {
	return "module_progresses"
}

// LearningPathProgress 路径级汇总：progress = 该路径下各模块进度的算术平均
// swagger:model LearningPathProgress
type LearningPathProgress struct {
	BaseModel
	UserID         string     `gorm:"size:255;not null;index:idx_user_path,unique" json:"userId"`
	LearningPathID string     `gorm:"type:varchar(36);not null;index:idx_user_path,unique" json:"learningPathId"`
	Progress       float64    `gorm:"default:0" json:"progress"`
	StartedAt      time.Time  `gorm:"autoCreateTime" json:"startedAt"`
	IsCompleted    bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt    *time.Time `json:"completedAt"`
}

func (LearningPathProgress) TableName() string {
	return "learning_path_progresses"
}

// BeforeSave 进度达到 100 时标记完成并盖章，一旦回落则清除
func (p *LearningPathProgress) BeforeSave(tx *gorm.DB) (err error) {
	if p.Progress >= 100 {
		p.IsCompleted = true
		if p.CompletedAt == nil {
			now := time.Now()
			p.CompletedAt = &now
		}
	} else {
		p.IsCompleted = false
		p.CompletedAt = nil
	}
	return
}

// swagger:model AssignmentAttempt
type AssignmentAttempt struct {
	BaseModel
	UserID       string    `gorm:"size:255;not null;index:idx_user_assignment,unique" json:"userId"`
	AssignmentID string    `gorm:"type:varchar(36);not null;index:idx_user_assignment,unique" json:"assignmentId"`
	Status       string    `gorm:"size:50;default:'not_started'" json:"status"`
	Score        *int      `json:"score"`
	AttemptedAt  time.Time `gorm:"autoCreateTime" json:"attemptedAt"`
}

func (AssignmentAttempt) TableName() string {
	return "assignment_attempts"
}

// swagger:model AssessmentAttempt
type AssessmentAttempt struct {
	BaseModel
	UserID        string    `gorm:"size:255;not null;index:idx_user_assessment_no,unique" json:"userId"`
	AssessmentID  string    `gorm:"type:varchar(36);not null;index:idx_user_assessment_no,unique" json:"assessmentId"`
	AttemptNumber int       `gorm:"default:1;index:idx_user_assessment_no,unique" json:"attemptNumber"`
	Score         *float64  `json:"score"`
	Status        string    `gorm:"size:50;default:'not_attempted'" json:"status"`
	AttemptedAt   time.Time `gorm:"autoUpdateTime" json:"attemptedAt"`
}

func (AssessmentAttempt) TableName() string {
	return "assessment_attempts"
}
