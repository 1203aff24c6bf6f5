package entity

// Migration tracks post-deploy migrators that already ran.
type Migration struct {
	Base

	Version string `gorm:"unique"`
}
