package model

// ProfileID はビジネスプロフィールの固定ID。プロフィールは常にこのIDの1行のみ存在する。
const ProfileID int64 = 1

// BusinessProfile はランディングページに表示する事業者情報を表す。
// Name以外の項目は未設定（NULL）を許容する。
type BusinessProfile struct {
	ID             int64
	Name           string
	Tagline        *string
	Description    *string
	Phone          *string
	Email          *string
	Address        *string
	PrimaryColor   *string
	SecondaryColor *string
	AccentColor    *string
}
