package suggestion

import (
	"strings"
)

// Sanitize 清理模型輸出：移除 markdown code fence（含語言標記）
// 以及任何以冒號結尾的前導說明句，前後空白一併修剪
// 純函數且冪等：對已乾淨的 JSON 文字再跑一次會原封不動返回
func Sanitize(content string) string {
	// 移除 code fence（```json 或 ```）
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	content = strings.TrimSpace(content)

	// 移除前導說明句（例如 "Here are 3 recipes:"）
	// 找到第一個 JSON 起始符號；若它前面的文字以冒號結尾就整段丟棄
	start := strings.IndexAny(content, "[{")
	if start > 0 {
		prefix := strings.TrimSpace(content[:start])
		if strings.HasSuffix(prefix, ":") {
			content = content[start:]
		}
	}

	return strings.TrimSpace(content)
}
