package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kinocourses/kinocourses/database"
	"github.com/kinocourses/kinocourses/database/model"
	"github.com/kinocourses/kinocourses/logger"
	"github.com/kinocourses/kinocourses/util/common"

	"gorm.io/gorm"
)

// CourseService is the course repository. Every read goes to the database,
// so rows written by other processes are visible immediately.
type CourseService struct{}

// GetCourses returns every course ordered by id, without lessons.
func (s *CourseService) GetCourses() ([]model.Course, error) {
	var courses []model.Course
	err := database.GetDB().Model(model.Course{}).Order("id").Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// GetCourse returns one course with its lessons. A missing course yields an
// error for which database.IsNotFound is true.
func (s *CourseService) GetCourse(id int) (*model.Course, error) {
	course := &model.Course{}
	err := database.GetDB().Model(model.Course{}).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("id = ?", id).
		First(course).
		Error
	if err != nil {
		return nil, err
	}
	return course, nil
}

// SearchCourses returns the courses whose name or description contains text.
// Matching is a case-sensitive substring match.
func (s *CourseService) SearchCourses(text string) ([]model.Course, error) {
	courses, err := s.GetCourses()
	if err != nil {
		return nil, err
	}
	found := make([]model.Course, 0)
	for _, c := range courses {
		if strings.Contains(c.Name, text) || strings.Contains(c.Description, text) {
			found = append(found, c)
		}
	}
	return found, nil
}

func (s *CourseService) AddCourse(course *model.Course) error {
	if course.Name == "" || course.Description == "" {
		return errors.New("course name and description can not be empty")
	}
	if course.DateStart != nil && course.DateEnd != nil && course.DateEnd.Before(*course.DateStart) {
		return common.NewErrorf("course ends before it starts: %v < %v",
			course.DateEnd.Format(time.RFC3339), course.DateStart.Format(time.RFC3339))
	}
	if err := database.GetDB().Create(course).Error; err != nil {
		return fmt.Errorf("add course %q: %w", course.Name, err)
	}
	logger.Infof("course %d %q created", course.Id, course.Name)
	return nil
}

// AddLesson attaches a lesson to an existing course.
func (s *CourseService) AddLesson(lesson *model.Lesson) error {
	if err := database.GetDB().Create(lesson).Error; err != nil {
		return fmt.Errorf("add lesson to course %d: %w", lesson.CourseId, err)
	}
	return nil
}

// CountCourses returns the number of stored courses.
func (s *CourseService) CountCourses() (int64, error) {
	var count int64
	err := database.GetDB().Model(model.Course{}).Count(&count).Error
	return count, err
}
