package database

import (
	"edupath_backend/internal/config"
	"edupath_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate 建表与索引，按叶子到汇总的依赖顺序迁移
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.LearningPath{},
		&model.InstituteBatchLearningPath{},
		&model.Module{},
		&model.Lecture{},
		&model.Assignment{},
		&model.Assessment{},
		&model.LectureProgress{},
		&model.ModuleProgress{},
		&model.LearningPathProgress{},
		&model.AssignmentAttempt{},
		&model.AssessmentAttempt{},
	)
}
