package logging

import (
	"regexp"
)

var (
	// Bearer トークン（JWT）
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]*`)

	// URL 形式の DSN 内パスワード
	dbPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// key=value 形式の DSN 内パスワード
	kvPasswordPattern = regexp.MustCompile(`(?i)(password\s*=\s*)('[^']*'|\S+)`)

	// レコードに含まれるメールアドレス（ローカル部のみ隠す）
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@([A-Za-z0-9.\-]+\.[A-Za-z]{2,})\b`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す。
// DSN の処理を先に行い、user:pass@host がメールとして扱われないようにする。
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")
	msg = emailPattern.ReplaceAllString(msg, "****@$1")
	return msg
}
