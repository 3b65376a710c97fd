package config

import (
	"log"
	"time"

	"college-cms/internal/adapters/persistence/models"
	"college-cms/internal/pkg/password"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedMasterData seeds departments always and, in dev mode only, demo users,
// faculty and attendance so the payroll flows can be exercised immediately.
func SeedMasterData(db *gorm.DB) error {
	if err := seedDepartments(db); err != nil {
		return err
	}

	if AppConfig != nil && AppConfig.IsDev() {
		if err := seedUsers(db); err != nil {
			return err
		}
		if err := seedFaculty(db); err != nil {
			return err
		}
		if err := seedAttendance(db); err != nil {
			return err
		}
	}

	log.Println("✅ Master data seeding completed")
	return nil
}

func seedDepartments(db *gorm.DB) error {
	departments := []models.Department{
		{Code: "CSE", Name: "Computer Science", IsActive: true},
		{Code: "MAT", Name: "Mathematics", IsActive: true},
		{Code: "PHY", Name: "Physics", IsActive: true},
		{Code: "ADM", Name: "Administration", IsActive: true},
	}

	for _, dept := range departments {
		var count int64
		if err := db.Model(&models.Department{}).Where("code = ?", dept.Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&dept).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedUsers(db *gorm.DB) error {
	users := []struct {
		employeeNo string
		username   string
		email      string
		role       string
	}{
		{"ADM001", "admin", "admin@cms.example.edu", "ADMIN"},
		{"HR001", "hr", "hr@cms.example.edu", "HR"},
	}

	for _, u := range users {
		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", u.username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hashed, err := password.Hash("changeme123")
		if err != nil {
			return err
		}

		user := models.User{
			EmployeeNo: u.employeeNo,
			Username:   u.username,
			Email:      u.email,
			Password:   hashed,
			Role:       u.role,
			IsActive:   true,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("✅ Seeded user: %s (%s)", u.username, u.role)
	}

	return nil
}

func seedFaculty(db *gorm.DB) error {
	var cse models.Department
	if err := db.Where("code = ?", "CSE").First(&cse).Error; err != nil {
		return err
	}

	faculties := []models.Faculty{
		{EmployeeNo: "FAC001", FullName: "Anita Rao", Designation: "Assistant Professor", DepartmentID: cse.ID, BasicSalary: decimal.NewFromInt(50000), IsActive: true},
		{EmployeeNo: "FAC002", FullName: "Vikram Shah", Designation: "Professor", DepartmentID: cse.ID, BasicSalary: decimal.NewFromInt(80000), IsActive: true},
	}

	for _, f := range faculties {
		var count int64
		if err := db.Model(&models.Faculty{}).Where("employee_no = ?", f.EmployeeNo).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&f).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedAttendance(db *gorm.DB) error {
	month := time.Now().AddDate(0, -1, 0).Format("2006-01")

	var faculties []models.Faculty
	if err := db.Where("is_active = ?", true).Find(&faculties).Error; err != nil {
		return err
	}

	for _, f := range faculties {
		var count int64
		if err := db.Model(&models.AttendanceSummary{}).
			Where("faculty_id = ? AND month = ?", f.ID, month).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		summary := models.AttendanceSummary{
			FacultyID:   f.ID,
			Month:       month,
			TotalDays:   22,
			PresentDays: 20,
		}
		if err := db.Create(&summary).Error; err != nil {
			return err
		}
	}

	return nil
}
