package seeds

import (
	"context"
	"io/fs"
	"log"

	database "reflectify_backend/internals/databases"
	academics "reflectify_backend/internals/seeds/academics"
	feedback "reflectify_backend/internals/seeds/feedback"
	users "reflectify_backend/internals/seeds/users/auth"
)

// RunAllSeeds menjalankan semua seed dari fsys (biasanya seeds.Data).
// Aman dijalankan ulang: data yang sudah ada dilewati.
func RunAllSeeds(ctx context.Context, st *database.Stores, fsys fs.FS) error {
	//* User
	if err := users.SeedAdminsFromJSON(ctx, st.Admins, fsys, "data/admins.json"); err != nil {
		return err
	}

	//* Academics
	if err := academics.SeedAcademicsFromJSON(ctx, st, fsys, "data/academics.json"); err != nil {
		return err
	}

	//* Feedback (contoh form DRAFT per semester)
	if err := feedback.SeedSampleForms(ctx, st); err != nil {
		return err
	}

	log.Println("✅ Semua seed selesai")
	return nil
}
