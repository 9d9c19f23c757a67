package content

import (
	"errors"
	"fmt"

	"cheongso-ryeok/internal/model"
)

// ErrUnknownKind 는 정의되지 않은 컬렉션을 요청했을 때.
var ErrUnknownKind = errors.New("unknown collection kind")

// CollectionLoadError 는 컬렉션 하나를 끝까지 읽지 못한 경우.
// Err 는 파일 시스템 오류이거나 schema.Violations 다.
type CollectionLoadError struct {
	Kind model.Kind
	Dir  string
	Err  error
}

func (e *CollectionLoadError) Error() string {
	return fmt.Sprintf("load collection %s (%s): %v", e.Kind, e.Dir, e.Err)
}

func (e *CollectionLoadError) Unwrap() error { return e.Err }
