package parser

import (
	"strings"
)

// Repair は途中で途切れた JSON 文字列の構造修復を試みます。
// 末尾のカンマ除去、閉じられていない引用符の終端、開いたままの
// 括弧・波括弧の補完（出現数の差分で計算）のみを行います。
// 修復後のテキストが妥当である保証はなく、再デコードは呼び出し側の責務です。
func Repair(raw string) string {
	repaired := strings.TrimSpace(raw)
	if repaired == "" {
		return repaired
	}

	if strings.HasSuffix(repaired, ",") {
		repaired = strings.TrimSuffix(repaired, ",")
	}

	if hasUnterminatedString(repaired) {
		repaired += `"`
	}

	openBraces := strings.Count(repaired, "{")
	closeBraces := strings.Count(repaired, "}")
	openBrackets := strings.Count(repaired, "[")
	closeBrackets := strings.Count(repaired, "]")

	repaired += strings.Repeat("]", max(openBrackets-closeBrackets, 0))
	repaired += strings.Repeat("}", max(openBraces-closeBraces, 0))

	return repaired
}

// hasUnterminatedString は末尾が閉じられていない文字列リテラルで終わっているかを、
// エスケープを考慮しない引用符の偶奇で判定します。
func hasUnterminatedString(s string) bool {
	quotes := strings.Count(s, `"`) - strings.Count(s, `\"`)
	return quotes%2 == 1
}
