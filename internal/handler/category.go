package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/abidalfrz/expense-tracker-webapp/internal/service"
	"github.com/abidalfrz/expense-tracker-webapp/internal/util"

	"github.com/gin-gonic/gin"
)

// CategoryHandler serves category CRUD.
type CategoryHandler struct {
	Categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

// List renders the user's categories.
func (h *CategoryHandler) List(c *gin.Context) {
	user := currentUser(c)

	categories, err := h.Categories.List(user.ID)
	if err != nil {
		log.Printf("list categories: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.HTML(http.StatusOK, "categories.html", page(c, gin.H{
		"title":      "Expense Tracker - Categories",
		"categories": categories,
	}))
}

// AddForm renders the create form.
func (h *CategoryHandler) AddForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add_category.html", page(c, gin.H{
		"title": "Expense Tracker - Add Category",
	}))
}

// Add creates a category from the submitted form.
func (h *CategoryHandler) Add(c *gin.Context) {
	user := currentUser(c)

	name := c.PostForm("name")
	description := c.PostForm("description")

	if _, err := h.Categories.Create(user.ID, name, description); err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateCategory):
			util.Flash(c, util.FlashError, "Category already exists!")
		case errors.Is(err, service.ErrValidation):
			util.Flash(c, util.FlashError, "Category name is required!")
		default:
			log.Printf("create category: %v", err)
			util.Flash(c, util.FlashError, "Could not save category. Please try again.")
		}
		c.Redirect(http.StatusFound, "/categories/add")
		return
	}

	util.Flash(c, util.FlashSuccess, "Category added successfully!")
	c.Redirect(http.StatusFound, "/categories")
}

// EditForm renders the rename form.
func (h *CategoryHandler) EditForm(c *gin.Context) {
	user := currentUser(c)

	id, err := parseID(c)
	if err != nil {
		util.Flash(c, util.FlashError, "Invalid category id!")
		c.Redirect(http.StatusFound, "/categories")
		return
	}

	category, err := h.Categories.Get(user.ID, id)
	if err != nil {
		util.Flash(c, util.FlashError, "Category not found!")
		c.Redirect(http.StatusFound, "/categories")
		return
	}

	c.HTML(http.StatusOK, "add_category.html", page(c, gin.H{
		"title":    "Expense Tracker - Edit Category",
		"category": category,
	}))
}

// Edit renames a category and updates its description.
func (h *CategoryHandler) Edit(c *gin.Context) {
	user := currentUser(c)

	id, err := parseID(c)
	if err != nil {
		util.Flash(c, util.FlashError, "Invalid category id!")
		c.Redirect(http.StatusFound, "/categories")
		return
	}

	name := c.PostForm("name")
	description := c.PostForm("description")

	if err := h.Categories.Update(user.ID, id, name, description); err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateCategory):
			util.Flash(c, util.FlashError, "Category name already exists!")
			c.Redirect(http.StatusFound, "/categories/edit/"+strconv.FormatUint(uint64(id), 10))
			return
		case errors.Is(err, service.ErrNotFound):
			util.Flash(c, util.FlashError, "Category not found!")
		case errors.Is(err, service.ErrValidation):
			util.Flash(c, util.FlashError, "Category name is required!")
		default:
			log.Printf("update category: %v", err)
			util.Flash(c, util.FlashError, "Could not save category. Please try again.")
		}
		c.Redirect(http.StatusFound, "/categories")
		return
	}

	util.Flash(c, util.FlashSuccess, "Category updated successfully!")
	c.Redirect(http.StatusFound, "/categories")
}

// Delete removes a category unless expenses still reference it.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		util.Flash(c, util.FlashError, "Invalid category id!")
		c.Redirect(http.StatusFound, "/categories")
		return
	}

	if err := h.Categories.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryInUse):
			util.Flash(c, util.FlashError, "Cannot delete category with associated expenses!")
		case errors.Is(err, service.ErrNotFound):
			util.Flash(c, util.FlashError, "Category not found!")
		default:
			log.Printf("delete category: %v", err)
			util.Flash(c, util.FlashError, "Could not delete category. Please try again.")
		}
		c.Redirect(http.StatusFound, "/categories")
		return
	}

	util.Flash(c, util.FlashSuccess, "Category deleted successfully!")
	c.Redirect(http.StatusFound, "/categories")
}
