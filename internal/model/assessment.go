package model

// Assessment 学习路径的结业测评，1:1 挂在路径上
// 监考相关字段仅作配置存储，服务端不做任何判定
// swagger:model Assessment
type Assessment struct {
	UUIDBase
	LearningPathID            string  `gorm:"type:varchar(36);not null;uniqueIndex" json:"learningPathId"`
	Name                      string  `gorm:"size:100;not null" json:"name"`
	Description               string  `gorm:"type:text" json:"description"`
	TotalMarks                int     `gorm:"default:0" json:"totalMarks"`
	TotalQuestions            int     `gorm:"default:0" json:"totalQuestions"`
	TotalDuration             int     `gorm:"default:0" json:"totalDuration"` // Minutes
	TotalQualifyingPercentage float64 `gorm:"default:0" json:"totalQualifyingPercentage"`
	ExamType                  string  `gorm:"size:50" json:"examType"`
	PasswordExists            bool    `gorm:"default:false" json:"passwordExists"`
	TabSwitchesAllowed        bool    `gorm:"default:false" json:"tabSwitchesAllowed"`
	NoOfTabSwitches           int     `gorm:"default:0" json:"noOfTabSwitches"`
	IsFullscreen              bool    `gorm:"default:false" json:"isFullscreen"`
	Shuffle                   bool    `gorm:"default:false" json:"shuffle"`
	VoiceMonitoring           bool    `gorm:"default:false" json:"voiceMonitoring"`
	FaceProctoring            bool    `gorm:"default:false" json:"faceProctoring"`
	ElectronicMonitoring      bool    `gorm:"default:false" json:"electronicMonitoring"`
}

func (Assessment) TableName() string {
	return "assessments"
}
