package repository

import (
	"context"

	"hr-recruitment/internal/domain/application"

	"github.com/google/uuid"
)

// LoadDetails expands every child group for apps, issuing one query per
// child table regardless of how many applications are passed. Output order
// follows apps.
func (r *PostgresApplicationRepository) LoadDetails(ctx context.Context, apps []application.Application) ([]application.Details, error) {
	if len(apps) == 0 {
		return []application.Details{}, nil
	}

	ids := make([]uuid.UUID, 0, len(apps))
	byID := make(map[uuid.UUID]*application.Details, len(apps))
	out := make([]application.Details, len(apps))
	for i, a := range apps {
		out[i] = application.NewDetails(a)
		byID[a.ID] = &out[i]
		ids = append(ids, a.ID)
	}
	arg := idStrings(ids)

	loaders := []func(context.Context, []string, map[uuid.UUID]*application.Details) error{
		r.loadPersonalInfo,
		r.loadExperiences,
		r.loadCurrentJobs,
		r.loadPredefinedSkills,
		r.loadCustomSkills,
		r.loadLanguages,
		r.loadAdditionalLanguages,
		r.loadCompanyRelationships,
		r.loadEducation,
	}
	for _, load := range loaders {
		if err := load(ctx, arg, byID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PostgresApplicationRepository) loadPersonalInfo(ctx context.Context, ids []string, byID map[uuid.UUID]*application.Details) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, name, date_of_birth, governorate, address, national_id, nationality,
		        whatsapp_number, mobile_number, emergency_number, military_service_status, social_status,
		        has_vehicle, driving_license, profile_image_path, age, area, email, gender
		 FROM personal_info WHERE application_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p application.PersonalInfo
		if err := rows.Scan(
			&p.ID, &p.ApplicationID, &p.Name, &p.DateOfBirth, &p.Governorate, &p.Address, &p.NationalID, &p.Nationality,
			&p.WhatsappNumber, &p.MobileNumber, &p.EmergencyNumber, &p.MilitaryServiceStatus, &p.SocialStatus,
			&p.HasVehicle, &p.DrivingLicense, &p.ProfileImagePath, &p.Age, &p.Area, &p.Email, &p.Gender,
		); err != nil {
			return err
		}
		if d, ok := byID[p.ApplicationID]; ok {
			d.PersonalInfo = &p
		}
	}
	return rows.Err()
}

func (r *PostgresApplicationRepository) loadExperiences(ctx context.Context, ids []string, byID map[uuid.UUID]*application.Details) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, company, location, role, salary, from_date, to_date
		 FROM experiences WHERE application_id = ANY($1::uuid[])
		 ORDER BY position ASC, created_at ASC, id ASC`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e application.Experience
		if err := rows.Scan(&e.ID, &e.ApplicationID, &e.Company, &e.Location, &e.Role, &e.Salary, &e.FromDate, &e.ToDate); err != nil {
			return err
		}
		if d, ok := byID[e.ApplicationID]; ok {
			d.Experiences = append(d.Experiences, e)
		}
	}
	return rows.Err()
}

func (r *PostgresApplicationRepository) loadCurrentJobs(ctx context.Context, ids []string, byID map[uuid.UUID]*application.Details) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, is_currently_employed, company, role, salary
		 FROM current_jobs WHERE application_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c application.CurrentJob
		if err := rows.Scan(&c.ID, &c.ApplicationID, &c.IsCurrentlyEmployed, &c.Company, &c.Role, &c.Salary); err != nil {
			return err
		}
		if d, ok := byID[c.ApplicationID]; ok {
			d.CurrentJob = &c
		}
	}
	return rows.Err()
}

func (r *PostgresApplicationRepository) loadPredefinedSkills(ctx context.Context, ids []string, byID map[uuid.UUID]*application.Details) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, word, excel, powerpoint
		 FROM predefined_skills WHERE application_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var s application.PredefinedSkills
		var word, excel, ppt *string
		if err := rows.Scan(&s.ID, &s.ApplicationID, &word, &excel, &ppt); err != nil {
			return err
		}
		s.Word = toEnum[application.SkillLevel](word)
		s.Excel = toEnum[application.SkillLevel](excel)
		s.PowerPoint = toEnum[application.SkillLevel](ppt)
		if d, ok := byID[s.ApplicationID]; ok {
			d.PredefinedSkills = &s
		}
	}
	return rows.Err()
}

func (r *PostgresApplicationRepository) loadCustomSkills(ctx context.Context, ids []string, byID map[uuid.UUID]*application.Details) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, name, level
		 FROM custom_skills WHERE application_id = ANY($1::uuid[])
		 ORDER BY position ASC, created_at ASC, id ASC`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var s application.CustomSkill
		var level string
		if err := rows.Scan(&s.ID, &s.ApplicationID, &s.Name, &level); err != nil {
			return err
		}
		s.Level = application.SkillLevel(level)
		if d, ok := byID[s.ApplicationID]; ok {
			d.CustomSkills = append(d.CustomSkills, s)
		}
	}
	return rows.Err()
}

func (r *PostgresApplicationRepository) loadLanguages(ctx context.Context, ids []string, byID map[uuid.UUID]*application.Details) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, english
		 FROM languages WHERE application_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l application.Languages
		var english *string
		if err := rows.Scan(&l.ID, &l.ApplicationID, &english); err != nil {
			return err
		}
		if english != nil {
			l.English = application.LanguageLevel(*english)
		}
		if d, ok := byID[l.ApplicationID]; ok {
			d.Languages = &l
		}
	}
	return rows.Err()
}

func (r *PostgresApplicationRepository) loadAdditionalLanguages(ctx context.Context, ids []string, byID map[uuid.UUID]*application.Details) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, name, level
		 FROM additional_languages WHERE application_id = ANY($1::uuid[])
		 ORDER BY position ASC, created_at ASC, id ASC`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l application.AdditionalLanguage
		var level string
		if err := rows.Scan(&l.ID, &l.ApplicationID, &l.Name, &level); err != nil {
			return err
		}
		l.Level = application.LanguageLevel(level)
		if d, ok := byID[l.ApplicationID]; ok {
			d.AdditionalLanguages = append(d.AdditionalLanguages, l)
		}
	}
	return rows.Err()
}

func (r *PostgresApplicationRepository) loadCompanyRelationships(ctx context.Context, ids []string, byID map[uuid.UUID]*application.Details) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, has_relationship, contact_name, contact_position
		 FROM company_relationships WHERE application_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c application.CompanyRelationships
		if err := rows.Scan(&c.ID, &c.ApplicationID, &c.HasRelationship, &c.ContactName, &c.ContactPosition); err != nil {
			return err
		}
		if d, ok := byID[c.ApplicationID]; ok {
			d.CompanyRelationships = &c
		}
	}
	return rows.Err()
}

func (r *PostgresApplicationRepository) loadEducation(ctx context.Context, ids []string, byID map[uuid.UUID]*application.Details) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, institution, department, grade, from_date, to_date
		 FROM education WHERE application_id = ANY($1::uuid[])
		 ORDER BY position ASC, created_at ASC, id ASC`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e application.Education
		if err := rows.Scan(&e.ID, &e.ApplicationID, &e.Institution, &e.Department, &e.Grade, &e.FromDate, &e.ToDate); err != nil {
			return err
		}
		if d, ok := byID[e.ApplicationID]; ok {
			d.Education = append(d.Education, e)
		}
	}
	return rows.Err()
}
