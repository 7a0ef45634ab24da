package domain

// SupportedLanguages 是门户支持的语言集合，键为 ISO 639-1 语言码
var SupportedLanguages = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"mr": "Marathi",
	"ta": "Tamil",
	"te": "Telugu",
	"kn": "Kannada",
	"bn": "Bengali",
	"gu": "Gujarati",
	"pa": "Punjabi",
	"or": "Odia",
	"ml": "Malayalam",
	"as": "Assamese",
	"ne": "Nepali",
}

// IsSupportedLanguage 判断语言码是否受支持
func IsSupportedLanguage(code string) bool {
	_, ok := SupportedLanguages[code]
	return ok
}

// departmentExamples 按语言给出部门示例，用于提问话术
var departmentExamples = map[string]string{
	"en": "Water, Electricity, Land",
	"hi": "जल, बिजली, भूमि",
	"mr": "पाणी, वीज, जमीन",
}

// DepartmentExamples 返回指定语言的部门示例，无对应条目时回退英文
func DepartmentExamples(lang string) string {
	if examples, ok := departmentExamples[lang]; ok {
		return examples
	}
	return departmentExamples["en"]
}
