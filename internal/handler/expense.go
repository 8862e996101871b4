package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/abidalfrz/expense-tracker-webapp/internal/models"
	"github.com/abidalfrz/expense-tracker-webapp/internal/service"
	"github.com/abidalfrz/expense-tracker-webapp/internal/util"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler serves the dashboard and expense CRUD.
type ExpenseHandler struct {
	Expenses   *service.ExpenseService
	Categories *service.CategoryService
	Reports    *service.ReportService
}

func NewExpenseHandler(expenses *service.ExpenseService, categories *service.CategoryService, reports *service.ReportService) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses, Categories: categories, Reports: reports}
}

// expenseRow pairs an expense with its resolved category name for display.
type expenseRow struct {
	models.Expense
	CategoryName string
}

// Dashboard renders aggregated spending plus the expense list.
func (h *ExpenseHandler) Dashboard(c *gin.Context) {
	user := currentUser(c)

	report, err := h.Reports.Dashboard(user.ID)
	if err != nil {
		log.Printf("dashboard report: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	expenses, err := h.Expenses.ListByUser(user.ID)
	if err != nil {
		log.Printf("dashboard expenses: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	categories, err := h.Categories.List(user.ID)
	if err != nil {
		log.Printf("dashboard categories: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	names := make(map[uint]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	rows := make([]expenseRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, expenseRow{Expense: e, CategoryName: names[e.CategoryID]})
	}

	c.HTML(http.StatusOK, "dashboard.html", page(c, gin.H{
		"title":       "Expense Tracker - Dashboard",
		"name":        user.Username,
		"expenses":    rows,
		"categories":  report.Categories,
		"totals":      report.Totals,
		"suggestions": report.Suggestions,
	}))
}

// AddExpenseForm renders the create form with the user's categories.
func (h *ExpenseHandler) AddExpenseForm(c *gin.Context) {
	user := currentUser(c)
	categories, err := h.Categories.List(user.ID)
	if err != nil {
		log.Printf("list categories: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.HTML(http.StatusOK, "add_expense.html", page(c, gin.H{
		"title":      "Expense Tracker - Add Expense",
		"categories": categories,
	}))
}

// AddExpense creates an expense from the submitted form.
func (h *ExpenseHandler) AddExpense(c *gin.Context) {
	user := currentUser(c)

	in, err := parseExpenseForm(c)
	if err != nil {
		util.Flash(c, util.FlashError, "Invalid expense input!")
		c.Redirect(http.StatusFound, "/add_expense")
		return
	}

	if _, err := h.Expenses.Create(user.ID, in); err != nil {
		if errors.Is(err, service.ErrValidation) {
			util.Flash(c, util.FlashError, "Invalid expense input!")
			c.Redirect(http.StatusFound, "/add_expense")
			return
		}
		log.Printf("create expense: %v", err)
		util.Flash(c, util.FlashError, "Could not save expense. Please try again.")
		c.Redirect(http.StatusFound, "/add_expense")
		return
	}

	util.Flash(c, util.FlashSuccess, "Expense added successfully!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// EditExpenseForm renders the edit form, owner-checked.
func (h *ExpenseHandler) EditExpenseForm(c *gin.Context) {
	user := currentUser(c)

	id, err := parseID(c)
	if err != nil {
		util.Flash(c, util.FlashError, "Invalid expense id!")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	expense, err := h.Expenses.Get(user.ID, id)
	if err != nil {
		h.flashExpenseError(c, err, "load")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	categories, err := h.Categories.List(user.ID)
	if err != nil {
		log.Printf("list categories: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.HTML(http.StatusOK, "edit_expense.html", page(c, gin.H{
		"title":      "Expense Tracker - Edit Expense",
		"expense":    expense,
		"date":       expense.Date.Format("2006-01-02"),
		"categories": categories,
	}))
}

// EditExpense overwrites an expense in place, owner-checked.
func (h *ExpenseHandler) EditExpense(c *gin.Context) {
	user := currentUser(c)

	id, err := parseID(c)
	if err != nil {
		util.Flash(c, util.FlashError, "Invalid expense id!")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	in, err := parseExpenseForm(c)
	if err != nil {
		util.Flash(c, util.FlashError, "Invalid expense input!")
		c.Redirect(http.StatusFound, "/edit_expense/"+strconv.FormatUint(uint64(id), 10))
		return
	}

	if err := h.Expenses.Update(user.ID, id, in); err != nil {
		h.flashExpenseError(c, err, "update")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	util.Flash(c, util.FlashSuccess, "Expense updated successfully!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// DeleteExpense removes an expense, owner-checked.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	user := currentUser(c)

	id, err := parseID(c)
	if err != nil {
		util.Flash(c, util.FlashError, "Invalid expense id!")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	if err := h.Expenses.Delete(user.ID, id); err != nil {
		h.flashExpenseError(c, err, "delete")
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	util.Flash(c, util.FlashSuccess, "Expense deleted successfully!")
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *ExpenseHandler) flashExpenseError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		util.Flash(c, util.FlashError, "Unauthorized access!")
	case errors.Is(err, service.ErrNotFound):
		util.Flash(c, util.FlashError, "Expense not found!")
	case errors.Is(err, service.ErrValidation):
		util.Flash(c, util.FlashError, "Invalid expense input!")
	default:
		log.Printf("%s expense: %v", op, err)
		util.Flash(c, util.FlashError, "Something went wrong. Please try again.")
	}
}

// parseExpenseForm reads title, amount, date and category form fields.
func parseExpenseForm(c *gin.Context) (service.ExpenseInput, error) {
	title := c.PostForm("title")
	if err := util.ValidateName(title); err != nil {
		return service.ExpenseInput{}, err
	}

	amount, err := strconv.ParseFloat(c.PostForm("amount"), 64)
	if err != nil {
		return service.ExpenseInput{}, err
	}
	if err := util.ValidateAmount(amount); err != nil {
		return service.ExpenseInput{}, err
	}

	var date time.Time
	if date, err = util.ParseDate(c.PostForm("date")); err != nil {
		return service.ExpenseInput{}, err
	}

	categoryID, err := strconv.ParseUint(c.PostForm("category"), 10, 32)
	if err != nil {
		return service.ExpenseInput{}, err
	}

	return service.ExpenseInput{
		Title:      title,
		Amount:     amount,
		Date:       date,
		CategoryID: uint(categoryID),
	}, nil
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
