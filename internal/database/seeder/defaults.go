package seeder

func Defaults(hash func(string) (string, error), adminPassword, hrPassword string) []Seeder {
	return []Seeder{
		HRUsersSeeder{Users: DefaultHRUsers(adminPassword, hrPassword), Hash: hash},
		JobTitlesSeeder{},
	}
}
