package model

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// LearningPath 学习路径，课程体系的顶层单元
// swagger:model LearningPath
type LearningPath struct {
	UUIDBase
	Title          string      `gorm:"size:100;not null" json:"title"`
	Level          string      `gorm:"size:50;not null" json:"level"` // beginner / intermediate / advanced
	Time           string      `gorm:"size:50" json:"time"`
	Thumbnail      string      `gorm:"size:500" json:"thumbnail"`
	IsPublished    bool        `gorm:"default:false" json:"isPublished"`
	Description    string      `gorm:"type:text" json:"description"`
	CertificateURL string      `gorm:"size:500;default:''" json:"certificateUrl"`
	Modules        []Module    `gorm:"foreignKey:LearningPathID;constraint:OnDelete:CASCADE" json:"modules,omitempty"`
	Assessment     *Assessment `gorm:"foreignKey:LearningPathID;constraint:OnDelete:CASCADE" json:"assessment,omitempty"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// InstituteBatchLearningPath 学习路径与(机构, 批次)的多对多映射，与进度无关
// swagger:model InstituteBatchLearningPath
type InstituteBatchLearningPath struct {
	UUIDBase
	Institution    string `gorm:"size:100;not null;index:idx_institute_batch" json:"institution"`
	Batch          string `gorm:"size:50;not null;index:idx_institute_batch" json:"batch"`
	LearningPathID string `gorm:"type:varchar(36);not null;index" json:"learningPathId"`
}

func (InstituteBatchLearningPath) TableName() string {
	return "institute_batch_learning_paths"
}
