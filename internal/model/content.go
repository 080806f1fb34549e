package model

import "time"

// Service は提供サービスを表す。
// 表示順は (DisplayOrder 昇順, ID 昇順)。
type Service struct {
	ID           int64
	Title        string
	Summary      string
	DisplayOrder int
}

// Testimonial はお客様の声を表す。表示順はID昇順（登録順）。
type Testimonial struct {
	ID     int64
	Author string
	Quote  string
	Role   *string
}

// Lead は問い合わせフォームから送信された見込み客情報を表す。
// 追記専用で、更新・削除は行わない。
type Lead struct {
	ID        int64
	Name      *string
	Email     string
	Phone     *string
	Message   *string
	CreatedAt time.Time
}

// ContentBundle はランディングページ描画用にまとめて返すコンテンツ。
type ContentBundle struct {
	Profile      *BusinessProfile
	Services     []*Service
	Testimonials []*Testimonial
}
