// Package domain はitemsフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrItemNotFound はアイテムが存在しない場合に返されます。
	// 他ユーザーのアイテムへの書き込みも、所有状況を漏らさないために
	// 同じエラーに収束します。
	ErrItemNotFound = errors.New("item not found")

	// ErrItemInvalid は入力値の検証に失敗した場合のエラーの基底です。
	// 詳細メッセージを付けて%wでラップされます。
	ErrItemInvalid = errors.New("invalid item")
)
