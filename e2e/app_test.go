package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite provides a test suite for end-to-end tests
type E2ETestSuite struct {
	suite.Suite
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	expect  playwright.PlaywrightAssertions
}

// SetupSuite runs once before all tests
func (suite *E2ETestSuite) SetupSuite() {
	pw, err := playwright.Run()
	require.NoError(suite.T(), err, "could not launch playwright")
	suite.pw = pw

	browser, err := pw.Chromium.Launch()
	require.NoError(suite.T(), err, "could not launch chromium")
	suite.browser = browser

	suite.expect = playwright.NewPlaywrightAssertions()
}

// TearDownSuite runs once after all tests
func (suite *E2ETestSuite) TearDownSuite() {
	if suite.browser != nil {
		suite.browser.Close()
	}
	if suite.pw != nil {
		suite.pw.Stop()
	}
}

// SetupTest runs before each test
func (suite *E2ETestSuite) SetupTest() {
	page, err := suite.browser.NewPage()
	require.NoError(suite.T(), err, "could not create page")
	suite.page = page

	_, err = suite.page.Goto(appURL)
	require.NoError(suite.T(), err, "could not navigate to app")
}

// TearDownTest runs after each test
func (suite *E2ETestSuite) TearDownTest() {
	if suite.page != nil {
		suite.page.Close()
	}
}

func (suite *E2ETestSuite) login() {
	// Wait for login form
	err := suite.expect.Locator(suite.page.Locator(".login-form")).ToBeVisible()
	require.NoError(suite.T(), err, "login form not visible")

	// Fill in credentials
	err = suite.page.Locator("input[name=username]").Fill(adminUser)
	require.NoError(suite.T(), err, "failed to fill username")

	err = suite.page.Locator("input[name=password]").Fill(adminPassword)
	require.NoError(suite.T(), err, "failed to fill password")

	// Submit login
	err = suite.page.Locator(".login-btn").Click()
	require.NoError(suite.T(), err, "failed to click login")

	// Wait for redirect to the dashboard
	err = suite.expect.Locator(suite.page.Locator(".dashboard-screen")).ToBeVisible()
	require.NoError(suite.T(), err, "did not redirect to dashboard after login")
}

func (suite *E2ETestSuite) addWorkout(name, category, sets, reps, weight string) {
	form := suite.page.Locator("#workout-form")
	err := suite.expect.Locator(form).ToBeVisible()
	require.NoError(suite.T(), err, "workout form not visible")

	require.NoError(suite.T(), form.Locator("input[name=name]").Fill(name), "failed to fill name")
	_, err = form.Locator("select[name=category]").SelectOption(playwright.SelectOptionValues{
		Values: &[]string{category},
	})
	require.NoError(suite.T(), err, "failed to select category")
	require.NoError(suite.T(), form.Locator("input[name=sets]").Fill(sets), "failed to fill sets")
	require.NoError(suite.T(), form.Locator("input[name=reps]").Fill(reps), "failed to fill reps")
	require.NoError(suite.T(), form.Locator("input[name=weight]").Fill(weight), "failed to fill weight")

	err = form.Locator("button.submit").Click()
	require.NoError(suite.T(), err, "failed to submit workout")
}

func (suite *E2ETestSuite) TestCompleteUserFlow() {
	suite.login()

	err := suite.expect.Locator(suite.page.Locator(".summary small")).ToHaveText("Total volume")
	require.NoError(suite.T(), err, "dashboard summary missing")

	// Create: 3 x 5 @ 100
	suite.addWorkout("Back Squat", "Strength", "3", "5", "100")

	err = suite.expect.Locator(suite.page.Locator(".workout-item")).ToHaveCount(1)
	require.NoError(suite.T(), err, "workout item count mismatch")

	item := suite.page.Locator(".workout-item").First()
	err = suite.expect.Locator(item.Locator(".workout-details strong")).ToHaveText("Back Squat")
	require.NoError(suite.T(), err, "name mismatch")
	err = suite.expect.Locator(item.Locator(".workout-volume")).ToHaveText("1500.0")
	require.NoError(suite.T(), err, "volume mismatch")

	// Edit name, reps and weight
	err = item.Locator(".edit-link").Click()
	require.NoError(suite.T(), err, "failed to open edit form")

	edit := suite.page.Locator("#edit-form")
	err = suite.expect.Locator(edit).ToBeVisible()
	require.NoError(suite.T(), err, "edit form not visible")
	err = suite.expect.Locator(edit.Locator("input[name=name]")).ToHaveValue("Back Squat")
	require.NoError(suite.T(), err, "edit form not prefilled")

	require.NoError(suite.T(), edit.Locator("input[name=name]").Fill("Front Squat"))
	require.NoError(suite.T(), edit.Locator("input[name=reps]").Fill("4"))
	require.NoError(suite.T(), edit.Locator("input[name=weight]").Fill("80"))
	require.NoError(suite.T(), edit.Locator("button.submit").Click(), "failed to save edit")

	item = suite.page.Locator(".workout-item").First()
	err = suite.expect.Locator(item.Locator(".workout-details strong")).ToHaveText("Front Squat")
	require.NoError(suite.T(), err, "edited name mismatch")
	err = suite.expect.Locator(item.Locator(".workout-volume")).ToHaveText("960.0")
	require.NoError(suite.T(), err, "edited volume mismatch")

	// Delete
	err = item.Locator(".delete-btn").Click()
	require.NoError(suite.T(), err, "failed to click delete")

	err = suite.expect.Locator(suite.page.Locator(".workout-item")).ToHaveCount(0)
	require.NoError(suite.T(), err, "workout was not deleted")
	err = suite.expect.Locator(suite.page.Locator(".empty")).ToBeVisible()
	require.NoError(suite.T(), err, "empty state not shown")
}

func (suite *E2ETestSuite) TestStatisticsPage() {
	suite.login()
	suite.addWorkout("Rowing", "Cardio", "1", "10", "20")

	err := suite.expect.Locator(suite.page.Locator(".workout-item")).ToHaveCount(1)
	require.NoError(suite.T(), err, "workout item count mismatch")

	err = suite.page.Locator("a[href='/stats']").Click()
	require.NoError(suite.T(), err, "failed to open stats")

	err = suite.expect.Locator(suite.page.Locator(".stats-screen")).ToBeVisible()
	require.NoError(suite.T(), err, "stats page not visible")
	err = suite.expect.Locator(suite.page.Locator(".stats-screen")).ToContainText("Cardio")
	require.NoError(suite.T(), err, "category missing from stats")

	// Clean up so other tests start from an empty log
	_, err = suite.page.Goto(appURL + "/dashboard")
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.page.Locator(".workout-item .delete-btn").First().Click())
	err = suite.expect.Locator(suite.page.Locator(".workout-item")).ToHaveCount(0)
	require.NoError(suite.T(), err, "cleanup delete failed")
}

// TestE2ESuite runs the e2e test suite
func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
