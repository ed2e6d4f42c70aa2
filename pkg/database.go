package extract

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx"
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type generationRow struct {
	Run     string  `db:"run"`
	Nu      float64 `db:"nu_fraction"`
	NuBar   float64 `db:"nubar_fraction"`
	Unsplit float64 `db:"unsplit_fraction"`
}

// LoadDatabase fetches the generation fractions recorded for a run. Runs
// with no row in the production database keep the built-in defaults.
func LoadDatabase(db *sqlx.DB, run string) (GenerationFractions, error) {
	fractions, err := getGenerationFractionsFromDB(db, run)
	if err != nil {
		errMessage := fmt.Errorf("error getting generation fractions from database: %w", err)
		logger.Error(errMessage.Error())
		return fractions, err
	}
	return fractions, nil
}

func getGenerationFractionsFromDB(db *sqlx.DB, run string) (GenerationFractions, error) {
	fractions := DefaultFractions()

	query := "SELECT run, nu_fraction, nubar_fraction, unsplit_fraction FROM GenerationFractions WHERE run = ?"
	rows, err := db.Queryx(query, run)
	if err != nil {
		return fractions, err
	}
	defer rows.Close()

	for rows.Next() {
		result := generationRow{}
		err := rows.StructScan(&result)
		if err != nil {
			return fractions, err
		}
		fractions.Nu = result.Nu
		fractions.NuBar = result.NuBar
		fractions.Unsplit = result.Unsplit
		logger.Info(fmt.Sprintf("Generation fractions for run %s read from DB: nu %g, nubar %g, unsplit %g",
			run, fractions.Nu, fractions.NuBar, fractions.Unsplit), "database")
	}
	return fractions, rows.Err()
}
