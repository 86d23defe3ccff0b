package export

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxSheetNameLen 工作表名称的最大字符数
const MaxSheetNameLen = 31

// 工作表名称中不允许出现的字符
var sheetNameReplacer = strings.NewReplacer(
	`\`, "", "/", "", "?", "", "*", "", "[", "", "]", "", ":", "",
)

// SheetName 由教师姓名得到工作表名称
//
// 去掉 \ / ? * [ ] : 后截断到 31 个字符；结果为空或仅含空白时使用 fallback。
func SheetName(name, fallback string) string {
	cleaned := truncateRunes(sheetNameReplacer.Replace(name), MaxSheetNameLen)
	// 首尾单引号在表格软件中不合法
	cleaned = strings.Trim(cleaned, "'")
	if strings.TrimSpace(cleaned) == "" {
		return truncateRunes(fallback, MaxSheetNameLen)
	}
	return cleaned
}

// uniqueSheetName 同名工作表（不区分大小写）追加 " (2)"、" (3)" …，保持总长不超过 31
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		candidate = truncateRunes(name, MaxSheetNameLen-utf8.RuneCountInString(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

// FileName 规范化下载文件名：去首尾空白，空则取默认名，强制 .xlsx 扩展名
func FileName(name, def string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = def
	}
	if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		name += ".xlsx"
	}
	return name
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
