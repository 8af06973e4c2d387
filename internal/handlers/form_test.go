package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/reviewdesk/form-review-api/internal/authz"
	"github.com/reviewdesk/form-review-api/internal/constants"
	"github.com/reviewdesk/form-review-api/internal/database"
	"github.com/reviewdesk/form-review-api/internal/dto"
	"github.com/reviewdesk/form-review-api/internal/models"
	"github.com/reviewdesk/form-review-api/internal/repository"
	"github.com/reviewdesk/form-review-api/internal/services"
	"github.com/reviewdesk/form-review-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// FormHandlerTestSuite defines the test suite for FormHandler
type FormHandlerTestSuite struct {
	suite.Suite
	db              *gorm.DB
	handler         *FormHandler
	templateService *services.TemplateService
}

// SetupTest runs before each test
func (suite *FormHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Member{},
		&models.FormTemplate{},
		&models.FormTemplateField{},
		&models.Form{},
		&models.FormField{},
		&models.FormHistory{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	orgRepo := repository.NewOrganizationRepository(suite.db)
	templateRepo := repository.NewTemplateRepository(suite.db)
	formRepo := repository.NewFormRepository(suite.db)
	guard := authz.NewGuard(orgRepo)
	formService := services.NewFormService(formRepo, templateRepo, guard)
	suite.templateService = services.NewTemplateService(templateRepo)

	suite.handler = NewFormHandler(formService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *FormHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *FormHandlerTestSuite) createTestUser(email string, role models.PlatformRole) *models.User {
	user := &models.User{
		ID:           utils.NewID(),
		Name:         email,
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *FormHandlerTestSuite) createTestOrganization(name string) *models.Organization {
	org := &models.Organization{
		ID:   utils.NewID(),
		Name: name,
	}
	suite.db.Create(org)
	return org
}

func (suite *FormHandlerTestSuite) createTestMember(orgID, userID string, role models.MemberRole) *models.Member {
	member := &models.Member{
		ID:             utils.NewID(),
		UserID:         userID,
		OrganizationID: orgID,
		Role:           role,
		Version:        1,
		LastModifiedBy: userID,
	}
	suite.db.Create(member)
	return member
}

func (suite *FormHandlerTestSuite) createAuthContext(method, url string, body []byte, user *models.User, activeOrgID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set("current_user", user)
	if activeOrgID != "" {
		c.Set(constants.ContextKeyActiveOrgID, activeOrgID)
	}

	return c, w
}

// TestCreateForm_WithFields tests form creation with an explicit field set
func (suite *FormHandlerTestSuite) TestCreateForm_WithFields() {
	user := suite.createTestUser("creator@example.com", models.PlatformRoleUser)
	org := suite.createTestOrganization("Test Org")
	member := suite.createTestMember(org.ID, user.ID, models.RoleMember)

	requestBody := map[string]interface{}{
		"title": "Expense Report",
		"fields": []map[string]interface{}{
			{"name": "Amount", "type": "number", "required": true, "order": 1},
			{"name": "Reason", "type": "textarea", "order": 2},
		},
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/forms", body, user, org.ID)

	suite.handler.CreateForm(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.FormDTO
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Expense Report", response.Title)
	assert.Equal(suite.T(), models.FormStatusDraft, response.Status)
	assert.Equal(suite.T(), 1, response.Version)
	assert.Equal(suite.T(), member.ID, response.CreatorMemberID)
	assert.Len(suite.T(), response.Fields, 2)
	assert.Equal(suite.T(), "Amount", response.Fields[0].Name)
	assert.Equal(suite.T(), "Reason", response.Fields[1].Name)
}

// TestCreateForm_FromTemplate tests template instantiation: the template's
// field set is copied with default values as field values
func (suite *FormHandlerTestSuite) TestCreateForm_FromTemplate() {
	user := suite.createTestUser("creator@example.com", models.PlatformRoleUser)
	org := suite.createTestOrganization("Test Org")
	suite.createTestMember(org.ID, user.ID, models.RoleMember)

	defaultValue := "USD"
	template, err := suite.templateService.CreateTemplate(services.CreateTemplateInput{
		Name: "Expense Template",
		Fields: []services.TemplateFieldInput{
			{Name: "Currency", Type: models.FieldTypeText, Required: true, Order: 1, DefaultValue: &defaultValue},
			{Name: "Amount", Type: models.FieldTypeNumber, Required: true, Order: 2},
		},
		ActorID: user.ID,
	})
	suite.Require().NoError(err)

	requestBody := map[string]interface{}{
		"title":       "March Expenses",
		"template_id": template.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/forms", body, user, org.ID)

	suite.handler.CreateForm(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.FormDTO
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotNil(suite.T(), response.TemplateID)
	assert.Len(suite.T(), response.Fields, 2)
	assert.Equal(suite.T(), "Currency", response.Fields[0].Name)
	assert.NotNil(suite.T(), response.Fields[0].Value)
	assert.Equal(suite.T(), defaultValue, *response.Fields[0].Value)
	assert.Nil(suite.T(), response.Fields[1].Value)
}

// TestCreateForm_DuplicateFieldOrder tests rejection of colliding order values
func (suite *FormHandlerTestSuite) TestCreateForm_DuplicateFieldOrder() {
	user := suite.createTestUser("creator@example.com", models.PlatformRoleUser)
	org := suite.createTestOrganization("Test Org")
	suite.createTestMember(org.ID, user.ID, models.RoleMember)

	requestBody := map[string]interface{}{
		"title": "Broken Form",
		"fields": []map[string]interface{}{
			{"name": "A", "type": "text", "order": 1},
			{"name": "B", "type": "text", "order": 1},
		},
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/forms", body, user, org.ID)

	suite.handler.CreateForm(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateForm_AdminWithoutMembership tests that form authoring needs a
// concrete member record
func (suite *FormHandlerTestSuite) TestCreateForm_AdminWithoutMembership() {
	admin := suite.createTestUser("admin@example.com", models.PlatformRoleAdmin)
	org := suite.createTestOrganization("Test Org")

	requestBody := map[string]interface{}{"title": "Admin Form"}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/forms", body, admin, org.ID)

	suite.handler.CreateForm(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestUpdateForm_StatusChangeAppendsHistory tests that a status change bumps
// the version and writes a history row
func (suite *FormHandlerTestSuite) TestUpdateForm_StatusChangeAppendsHistory() {
	user := suite.createTestUser("creator@example.com", models.PlatformRoleUser)
	org := suite.createTestOrganization("Test Org")
	member := suite.createTestMember(org.ID, user.ID, models.RoleMember)

	form := &models.Form{
		ID:              utils.NewID(),
		Title:           "Test Form",
		Status:          models.FormStatusDraft,
		OrganizationID:  org.ID,
		CreatorMemberID: member.ID,
		Version:         1,
		LastModifiedBy:  member.ID,
	}
	suite.db.Create(form)

	body, _ := json.Marshal(map[string]string{"status": "under_review"})
	c, w := suite.createAuthContext("PATCH", "/api/forms/"+form.ID, body, user, org.ID)
	c.Params = gin.Params{{Key: "id", Value: form.ID}}

	suite.handler.UpdateForm(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.FormDTO
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.FormStatusUnderReview, response.Status)
	assert.Equal(suite.T(), 2, response.Version)

	var histories []models.FormHistory
	suite.db.Where("form_id = ?", form.ID).Find(&histories)
	assert.Len(suite.T(), histories, 1)
	assert.Equal(suite.T(), models.FormStatusUnderReview, histories[0].Status)
	assert.Equal(suite.T(), member.ID, histories[0].MemberID)
}

// TestUpdateForm_TitleOnlyNoHistory tests that a metadata update bumps the
// version without writing history
func (suite *FormHandlerTestSuite) TestUpdateForm_TitleOnlyNoHistory() {
	user := suite.createTestUser("creator@example.com", models.PlatformRoleUser)
	org := suite.createTestOrganization("Test Org")
	member := suite.createTestMember(org.ID, user.ID, models.RoleMember)

	form := &models.Form{
		ID:              utils.NewID(),
		Title:           "Old Title",
		Status:          models.FormStatusDraft,
		OrganizationID:  org.ID,
		CreatorMemberID: member.ID,
		Version:         1,
		LastModifiedBy:  member.ID,
	}
	suite.db.Create(form)

	body, _ := json.Marshal(map[string]string{"title": "New Title"})
	c, w := suite.createAuthContext("PATCH", "/api/forms/"+form.ID, body, user, org.ID)
	c.Params = gin.Params{{Key: "id", Value: form.ID}}

	suite.handler.UpdateForm(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.FormDTO
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "New Title", response.Title)
	assert.Equal(suite.T(), 2, response.Version)

	var count int64
	suite.db.Model(&models.FormHistory{}).Where("form_id = ?", form.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestUpdateForm_FieldReplacement tests that a provided field list replaces
// the prior set wholesale
func (suite *FormHandlerTestSuite) TestUpdateForm_FieldReplacement() {
	user := suite.createTestUser("creator@example.com", models.PlatformRoleUser)
	org := suite.createTestOrganization("Test Org")
	member := suite.createTestMember(org.ID, user.ID, models.RoleMember)

	form := &models.Form{
		ID:              utils.NewID(),
		Title:           "Test Form",
		Status:          models.FormStatusDraft,
		OrganizationID:  org.ID,
		CreatorMemberID: member.ID,
		Version:         1,
		LastModifiedBy:  member.ID,
	}
	suite.db.Create(form)
	old := &models.FormField{
		ID:     utils.NewID(),
		FormID: form.ID,
		Name:   "Old Field",
		Type:   models.FieldTypeText,
		Order:  1,
		Status: models.FormFieldStatusDraft,
	}
	suite.db.Create(old)

	requestBody := map[string]interface{}{
		"fields": []map[string]interface{}{
			{"name": "Replacement A", "type": "text", "order": 1},
			{"name": "Replacement B", "type": "date", "order": 2},
		},
	}
	body, _ := json.Marshal(requestBody)
	c, w := suite.createAuthContext("PATCH", "/api/forms/"+form.ID, body, user, org.ID)
	c.Params = gin.Params{{Key: "id", Value: form.ID}}

	suite.handler.UpdateForm(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var fields []models.FormField
	suite.db.Where("form_id = ?", form.ID).Order("field_order ASC").Find(&fields)
	assert.Len(suite.T(), fields, 2)
	assert.Equal(suite.T(), "Replacement A", fields[0].Name)
	assert.Equal(suite.T(), "Replacement B", fields[1].Name)

	// The old field is gone, not merged
	var count int64
	suite.db.Model(&models.FormField{}).Where("id = ?", old.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestDeleteForm_NotCreator tests deletion by a plain member who is neither
// creator nor owner
func (suite *FormHandlerTestSuite) TestDeleteForm_NotCreator() {
	creator := suite.createTestUser("creator@example.com", models.PlatformRoleUser)
	other := suite.createTestUser("other@example.com", models.PlatformRoleUser)
	org := suite.createTestOrganization("Test Org")
	creatorMember := suite.createTestMember(org.ID, creator.ID, models.RoleMember)
	suite.createTestMember(org.ID, other.ID, models.RoleMember)

	form := &models.Form{
		ID:              utils.NewID(),
		Title:           "Test Form",
		Status:          models.FormStatusDraft,
		OrganizationID:  org.ID,
		CreatorMemberID: creatorMember.ID,
		Version:         1,
		LastModifiedBy:  creatorMember.ID,
	}
	suite.db.Create(form)

	c, w := suite.createAuthContext("DELETE", "/api/forms/"+form.ID, nil, other, org.ID)
	c.Params = gin.Params{{Key: "id", Value: form.ID}}

	suite.handler.DeleteForm(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Form{}).Where("id = ?", form.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestDeleteForm_OrganizationOwner tests that an organization owner may
// delete any form in the organization
func (suite *FormHandlerTestSuite) TestDeleteForm_OrganizationOwner() {
	creator := suite.createTestUser("creator@example.com", models.PlatformRoleUser)
	owner := suite.createTestUser("owner@example.com", models.PlatformRoleUser)
	org := suite.createTestOrganization("Test Org")
	creatorMember := suite.createTestMember(org.ID, creator.ID, models.RoleMember)
	suite.createTestMember(org.ID, owner.ID, models.RoleOwner)

	form := &models.Form{
		ID:              utils.NewID(),
		Title:           "Test Form",
		Status:          models.FormStatusDraft,
		OrganizationID:  org.ID,
		CreatorMemberID: creatorMember.ID,
		Version:         1,
		LastModifiedBy:  creatorMember.ID,
	}
	suite.db.Create(form)
	field := &models.FormField{
		ID:     utils.NewID(),
		FormID: form.ID,
		Name:   "Field",
		Type:   models.FieldTypeText,
		Order:  1,
		Status: models.FormFieldStatusDraft,
	}
	suite.db.Create(field)

	c, w := suite.createAuthContext("DELETE", "/api/forms/"+form.ID, nil, owner, org.ID)
	c.Params = gin.Params{{Key: "id", Value: form.ID}}

	suite.handler.DeleteForm(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Form and fields removed together
	var formCount, fieldCount int64
	suite.db.Model(&models.Form{}).Where("id = ?", form.ID).Count(&formCount)
	suite.db.Model(&models.FormField{}).Where("form_id = ?", form.ID).Count(&fieldCount)
	assert.Equal(suite.T(), int64(0), formCount)
	assert.Equal(suite.T(), int64(0), fieldCount)
}

// TestListForms_Paginated tests listing with pagination metadata
func (suite *FormHandlerTestSuite) TestListForms_Paginated() {
	user := suite.createTestUser("member@example.com", models.PlatformRoleUser)
	org := suite.createTestOrganization("Test Org")
	member := suite.createTestMember(org.ID, user.ID, models.RoleMember)

	for i := 0; i < 3; i++ {
		form := &models.Form{
			ID:              utils.NewID(),
			Title:           "Form",
			Status:          models.FormStatusDraft,
			OrganizationID:  org.ID,
			CreatorMemberID: member.ID,
			Version:         1,
			LastModifiedBy:  member.ID,
		}
		suite.db.Create(form)
	}

	c, w := suite.createAuthContext("GET", "/api/forms", nil, user, org.ID)
	c.Request.URL.RawQuery = "page=1&limit=2"

	suite.handler.ListForms(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]json.RawMessage
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(suite.T(), response, "forms")
	assert.Contains(suite.T(), response, "pagination")

	var forms []dto.FormDTO
	assert.NoError(suite.T(), json.Unmarshal(response["forms"], &forms))
	assert.Len(suite.T(), forms, 2)

	var pagination utils.PaginationResponse
	assert.NoError(suite.T(), json.Unmarshal(response["pagination"], &pagination))
	assert.Equal(suite.T(), int64(3), pagination.Total)
}

// TestListForms_NonMemberForbidden tests listing for an outsider
func (suite *FormHandlerTestSuite) TestListForms_NonMemberForbidden() {
	outsider := suite.createTestUser("outsider@example.com", models.PlatformRoleUser)
	org := suite.createTestOrganization("Test Org")

	c, w := suite.createAuthContext("GET", "/api/forms", nil, outsider, org.ID)

	suite.handler.ListForms(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestSuite runs the test suite
func TestFormHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(FormHandlerTestSuite))
}
