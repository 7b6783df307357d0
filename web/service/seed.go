package service

import (
	"time"

	"github.com/kinocourses/kinocourses/database/model"
	"github.com/kinocourses/kinocourses/logger"
)

func demoDate(s string) *time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// demoCourses is the catalog shipped with the first release.
func demoCourses() []model.Course {
	return []model.Course{
		{
			Name:        "Хорроры",
			Description: "жанр фантастики, который предназначен устрашить, напугать, шокировать или вызвать отвращение у своих читателей или зрителей, вызвав у них чувства ужаса и шока.",
			Cover:       "https://true-gamer.com/wp-content/uploads/2020/04/horror-810x400.jpg",
			DateStart:   demoDate("2022-09-23T12:00:00"),
			DateEnd:     demoDate("2022-12-23T12:00:00"),
			Lessons: []model.Lesson{
				{Name: "Рассвет мертвецов", Content: "https://3dnews.ru/assets/external/illustrations/2015/08/12/918560/LayersofFear_screen.jpg"},
				{Name: "Рассвет", Content: "Рассвет"},
			},
		},
		{
			Name:        "Боевики",
			Description: "жанр кинематографа, в котором основное внимание уделяется перестрелкам, дракам, погоням и т. д. Боевики часто обладают высоким бюджетом, изобилуют каскадёрскими трюками и спецэффектами. Большинство боевиков иллюстрируют известный тезис «добро должно быть с кулаками».",
			Cover:       "https://artifex.ru/wp-content/uploads/2019/09/%D1%84%D0%BE%D1%82%D0%BE-1-2.jpg",
			IsNew:       true,
		},
		{
			Name:        "Комедии",
			Description: "жанр художественного произведения, характеризующийся юмористическим или сатирическим подходами, и также вид драмы, в котором специфически разрешается момент действенного конфликта или борьбы. Является противоположным жанром трагедии.",
			Cover:       "https://wl-adme.cf.tsp.li/resize/728x/png/675/25b/8325645233aef27e685dc270f4.png",
			IsNew:       true,
		},
		{
			Name:        "Детективы",
			Description: "преимущественно литературный и кинематографический жанр, произведения которого описывают процесс исследования загадочного происшествия с целью выяснения его обстоятельств и раскрытия загадки.",
			Cover:       "https://school-of-inspiration.ru/wp-content/uploads/2020/11/5ae1ce7200f5c794801760.jpg",
		},
	}
}

// SeedDemoCourses stores the demo catalog when no course exists yet and
// reports how many courses were added.
func (s *CourseService) SeedDemoCourses() (int, error) {
	count, err := s.CountCourses()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info("courses table is not empty, skip seeding")
		return 0, nil
	}

	courses := demoCourses()
	for i := range courses {
		if err := s.AddCourse(&courses[i]); err != nil {
			return i, err
		}
	}
	return len(courses), nil
}
