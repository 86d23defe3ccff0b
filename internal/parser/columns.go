package parser

// 源表固定列布局（0 起始），不可配置
const (
	ColName           = 3  // 学科 / 院系名称
	ColCode           = 4  // 方向代码
	ColCourse         = 5  // 年级
	ColStudents       = 6  // 学生人数
	ColGroups         = 7  // 分组
	ColAutumnLectures = 8  // 秋季：讲课
	ColAutumnSeminars = 9  // 秋季：研讨
	ColAutumnLabs     = 10 // 秋季：实验
	ColAutumnForm     = 15 // 秋季：考核形式
	ColSpringLectures = 16 // 春季：讲课
	ColSpringSeminars = 17 // 春季：研讨
	ColSpringLabs     = 18 // 春季：实验
	ColSpringForm     = 23 // 春季：考核形式
	ColConsultation   = 32 // 考前辅导
	ColExam           = 33 // 考试 / 考查
	ColTotal          = 34 // 总课时
)

// ExportWidth 导出行固定列数
const ExportWidth = ColTotal + 1
