package service

import (
	"sort"

	"fun2learn_backend/internal/model"
)

// LessonRef 定位总顺序中的一个课时及其所在单元/章节
type LessonRef struct {
	Unit    *model.Unit
	Chapter *model.Chapter
	Lesson  *model.Lesson
}

// 课程内容树的只读遍历。兄弟顺序一律在遍历时按 index 排序，
// 不信任存储层的返回顺序（编辑和删除会打乱它）。排序使用稳定排序，
// 同一次调用内即使出现重复 index 顺序也是确定的。

func sortedUnits(course *model.Course) []*model.Unit {
	units := make([]*model.Unit, len(course.Units))
	for i := range course.Units {
		units[i] = &course.Units[i]
	}
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].UnitIndex < units[j].UnitIndex
	})
	return units
}

func sortedChapters(unit *model.Unit) []*model.Chapter {
	chapters := make([]*model.Chapter, len(unit.Chapters))
	for i := range unit.Chapters {
		chapters[i] = &unit.Chapters[i]
	}
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].ChapterIndex < chapters[j].ChapterIndex
	})
	return chapters
}

func sortedLessons(chapter *model.Chapter) []*model.Lesson {
	lessons := make([]*model.Lesson, len(chapter.Lessons))
	for i := range chapter.Lessons {
		lessons[i] = &chapter.Lessons[i]
	}
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].LessonIndex < lessons[j].LessonIndex
	})
	return lessons
}

// FirstLesson 返回总顺序中的第一个课时，课程没有任何课时时返回 nil
func FirstLesson(course *model.Course) *LessonRef {
	for _, unit := range sortedUnits(course) {
		for _, chapter := range sortedChapters(unit) {
			lessons := sortedLessons(chapter)
			if len(lessons) > 0 {
				return &LessonRef{Unit: unit, Chapter: chapter, Lesson: lessons[0]}
			}
		}
	}
	return nil
}

// AllLessonsOrdered 展开课程的全部课时，按 (unit.index, chapter.index,
// lesson.index) 的深度优先总顺序排列。每次调用重新计算，不做缓存。
func AllLessonsOrdered(course *model.Course) []LessonRef {
	var refs []LessonRef
	for _, unit := range sortedUnits(course) {
		for _, chapter := range sortedChapters(unit) {
			for _, lesson := range sortedLessons(chapter) {
				refs = append(refs, LessonRef{Unit: unit, Chapter: chapter, Lesson: lesson})
			}
		}
	}
	return refs
}

// CountLessons 课程课时总数，进度百分比的分母
func CountLessons(course *model.Course) int {
	total := 0
	for i := range course.Units {
		for j := range course.Units[i].Chapters {
			total += len(course.Units[i].Chapters[j].Lessons)
		}
	}
	return total
}
