package repository

import "errors"

// 対象の行がない
var ErrNotFound = errors.New("not found")

// ユニーク制約違反（メール重複、同じ注文・商品への2回目のコメント）
var ErrDuplicate = errors.New("duplicate")
