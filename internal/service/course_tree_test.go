package service

import (
	"testing"

	"fun2learn_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lesson(id string, index int) model.Lesson {
	return model.Lesson{
		UUIDBase:    model.UUIDBase{ID: id},
		Name:        id,
		LessonIndex: index,
	}
}

func TestAllLessonsOrdered_SortsByIndexNotStorageOrder(t *testing.T) {
	// 切片顺序故意打乱，遍历必须按 index 还原
	course := &model.Course{
		Units: []model.Unit{
			{
				UUIDBase:  model.UUIDBase{ID: "u2"},
				UnitIndex: 1,
				Chapters: []model.Chapter{
					{
						UUIDBase:     model.UUIDBase{ID: "c3"},
						ChapterIndex: 0,
						Lessons:      []model.Lesson{lesson("l5", 1), lesson("l4", 0)},
					},
				},
			},
			{
				UUIDBase:  model.UUIDBase{ID: "u1"},
				UnitIndex: 0,
				Chapters: []model.Chapter{
					{
						UUIDBase:     model.UUIDBase{ID: "c2"},
						ChapterIndex: 1,
						Lessons:      []model.Lesson{lesson("l3", 0)},
					},
					{
						UUIDBase:     model.UUIDBase{ID: "c1"},
						ChapterIndex: 0,
						Lessons:      []model.Lesson{lesson("l2", 1), lesson("l1", 0)},
					},
				},
			},
		},
	}

	refs := AllLessonsOrdered(course)
	require.Len(t, refs, 5)

	got := make([]string, 0, len(refs))
	for _, ref := range refs {
		got = append(got, ref.Lesson.ID)
	}
	assert.Equal(t, []string{"l1", "l2", "l3", "l4", "l5"}, got)

	// 每个引用都要带上正确的祖先
	assert.Equal(t, "u1", refs[0].Unit.ID)
	assert.Equal(t, "c1", refs[0].Chapter.ID)
	assert.Equal(t, "u2", refs[4].Unit.ID)
	assert.Equal(t, "c3", refs[4].Chapter.ID)
}

func TestFirstLesson_SkipsEmptyChapters(t *testing.T) {
	course := &model.Course{
		Units: []model.Unit{
			{
				UUIDBase:  model.UUIDBase{ID: "u1"},
				UnitIndex: 0,
				Chapters: []model.Chapter{
					{UUIDBase: model.UUIDBase{ID: "c1"}, ChapterIndex: 0},
					{
						UUIDBase:     model.UUIDBase{ID: "c2"},
						ChapterIndex: 1,
						Lessons:      []model.Lesson{lesson("l1", 0)},
					},
				},
			},
		},
	}

	first := FirstLesson(course)
	require.NotNil(t, first)
	assert.Equal(t, "l1", first.Lesson.ID)
	assert.Equal(t, "c2", first.Chapter.ID)
}

func TestFirstLesson_EmptyCourse(t *testing.T) {
	course := &model.Course{
		Units: []model.Unit{
			{UnitIndex: 0, Chapters: []model.Chapter{{ChapterIndex: 0}}},
		},
	}
	assert.Nil(t, FirstLesson(course))
	assert.Nil(t, FirstLesson(&model.Course{}))
}

func TestCountLessons(t *testing.T) {
	course := &model.Course{
		Units: []model.Unit{
			{
				Chapters: []model.Chapter{
					{Lessons: []model.Lesson{lesson("l1", 0), lesson("l2", 1)}},
					{},
				},
			},
			{
				Chapters: []model.Chapter{
					{Lessons: []model.Lesson{lesson("l3", 0)}},
				},
			},
		},
	}
	assert.Equal(t, 3, CountLessons(course))
	assert.Equal(t, 0, CountLessons(&model.Course{}))
}
