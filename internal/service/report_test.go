package service

import (
	"testing"
	"time"

	"github.com/abidalfrz/expense-tracker-webapp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ReportServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	reports *ReportService
	user    *models.User
	catID   map[string]uint
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())

	users := NewUserService(suite.db, testBcryptCost)
	user, err := users.Register("alice", "secret123")
	require.NoError(suite.T(), err)
	suite.user = user

	categories := NewCategoryService(suite.db)
	expenses := NewExpenseService(suite.db)
	suite.reports = NewReportService(expenses, categories)

	cats, err := categories.List(user.ID)
	require.NoError(suite.T(), err)
	suite.catID = make(map[string]uint, len(cats))
	for _, c := range cats {
		suite.catID[c.Name] = c.ID
	}
}

func (suite *ReportServiceTestSuite) spend(category string, amount float64) {
	expenses := NewExpenseService(suite.db)
	_, err := expenses.Create(suite.user.ID, ExpenseInput{
		Title:      category + " spend",
		Amount:     amount,
		Date:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CategoryID: suite.catID[category],
	})
	require.NoError(suite.T(), err)
}

func (suite *ReportServiceTestSuite) TestHealthySpending() {
	suite.spend("Food", 100)
	suite.spend("Food", 50)
	suite.spend("Transport", 30)

	report, err := suite.reports.Dashboard(suite.user.ID)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), []string{"Food", "Transport"}, report.Categories)
	assert.Equal(suite.T(), []float64{150, 30}, report.Totals)
	assert.Equal(suite.T(), []string{"Your spending is within healthy limits."}, report.Suggestions)
}

func (suite *ReportServiceTestSuite) TestOverThresholdSuggestion() {
	suite.spend("Food", 60000)

	report, err := suite.reports.Dashboard(suite.user.ID)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), []string{"Food"}, report.Categories)
	assert.Equal(suite.T(), []float64{60000}, report.Totals)
	require.Len(suite.T(), report.Suggestions, 1)
	assert.Equal(suite.T(), "You spend Rp60000 on Food. Consider reducing it.", report.Suggestions[0])
}

func (suite *ReportServiceTestSuite) TestEmptyDashboard() {
	report, err := suite.reports.Dashboard(suite.user.ID)
	require.NoError(suite.T(), err)

	assert.Empty(suite.T(), report.Categories)
	assert.Empty(suite.T(), report.Totals)
	assert.Empty(suite.T(), report.Suggestions)
}

func (suite *ReportServiceTestSuite) TestTieKeepsFirstSeenCategory() {
	suite.spend("Transport", 70000)
	suite.spend("Food", 70000)

	report, err := suite.reports.Dashboard(suite.user.ID)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), []string{"Transport", "Food"}, report.Categories)
	require.Len(suite.T(), report.Suggestions, 1)
	assert.Contains(suite.T(), report.Suggestions[0], "Transport", "earliest category wins the tie")
}

func (suite *ReportServiceTestSuite) TestExactThresholdIsHealthy() {
	suite.spend("Food", 50000)

	report, err := suite.reports.Dashboard(suite.user.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Your spending is within healthy limits."}, report.Suggestions)
}

func TestReportServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
