// Package controllers file: controllers/content_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ambica-decor/api"
	"ambica-decor/forms"
	"ambica-decor/logger"
	"ambica-decor/models"
	"ambica-decor/services"
)

// editableSections are the content documents the console can edit.
var editableSections = []string{
	models.SectionHomepage,
	models.SectionAbout,
	models.SectionLocation,
}

// ContentController edits the page content documents (homepage, about,
// location) through the same draft/submit workflow as the entity forms.
// Unknown fields on a document survive editing untouched.
type ContentController struct {
	Form     *forms.Controller[models.PageContent]
	Sessions services.SessionServiceInterface
}

// NewContentController wires the form controller to the content
// operations of the API client. Sections always exist on the backend,
// so the create path is never taken.
func NewContentController(apiClient *api.Client, sessionService services.SessionServiceInterface) *ContentController {
	ops := forms.Ops[models.PageContent]{
		List: func() ([]models.PageContent, error) {
			docs := make([]models.PageContent, 0, len(editableSections))
			for _, section := range editableSections {
				doc, err := apiClient.GetContent(section)
				if err != nil {
					return nil, err
				}
				docs = append(docs, doc)
			}
			return docs, nil
		},
		Create: func(models.PageContent) error {
			return errors.New("content sections cannot be created from the console")
		},
		Update: func(section string, doc models.PageContent) error {
			return apiClient.PutContent(section, doc)
		},
		Delete: func(string) error {
			return errors.New("content sections cannot be deleted")
		},
		ID:      func(doc models.PageContent) string { return doc.Section },
		Missing: func(models.PageContent) []string { return nil },
	}

	return &ContentController{Form: forms.New(ops), Sessions: sessionService}
}

// ManageContent lists the editable sections.
func (cc *ContentController) ManageContent(c *gin.Context) {
	if err := cc.Form.Load(); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			forceRelogin(c, cc.Sessions)
			return
		}
		logger.Warn.Printf("ManageContent: load failed: %v", err)
	}
	c.HTML(http.StatusOK, "manage_content.html", gin.H{
		"Sections": editableSections,
		"Notice":   c.Query("notice"),
	})
}

// EditContent opens a draft for one section.
func (cc *ContentController) EditContent(c *gin.Context) {
	section := c.Param("section")
	if !knownSection(section) {
		c.Redirect(http.StatusFound, "/admin/content")
		return
	}

	if err := cc.Form.Load(); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			forceRelogin(c, cc.Sessions)
			return
		}
		logger.Warn.Printf("EditContent: load failed: %v", err)
		c.Redirect(http.StatusFound, "/admin/content")
		return
	}

	for _, doc := range cc.Form.Items() {
		if doc.Section == section {
			cc.Form.BeginEdit(doc)
			cc.render(c, gin.H{})
			return
		}
	}
	c.Redirect(http.StatusFound, "/admin/content")
}

// SaveContent folds the posted fields into the draft, applies any list
// action (paragraph/value add or remove), and submits on "save". List
// edits are draft-only; nothing reaches the backend until save.
func (cc *ContentController) SaveContent(c *gin.Context) {
	draft, ok := cc.Form.Draft()
	if !ok {
		c.Redirect(http.StatusFound, "/admin/content")
		return
	}

	_ = cc.Form.SetDraft(func(doc *models.PageContent) {
		foldSectionFields(doc, c)
	})

	switch c.PostForm("action") {
	case "add_paragraph":
		_ = cc.Form.SetDraft(func(doc *models.PageContent) {
			doc.Set("paragraphs", forms.AppendItem(doc.Strings("paragraphs"), ""))
		})
		cc.render(c, gin.H{})
	case "remove_paragraph":
		index, err := strconv.Atoi(c.PostForm("index"))
		if err == nil {
			_ = cc.Form.SetDraft(func(doc *models.PageContent) {
				doc.Set("paragraphs", forms.RemoveAt(doc.Strings("paragraphs"), index))
			})
		}
		cc.render(c, gin.H{})
	case "add_value":
		_ = cc.Form.SetDraft(func(doc *models.PageContent) {
			doc.Set("values", forms.AppendItem(doc.Records("values"), models.TitledRecord{}))
		})
		cc.render(c, gin.H{})
	case "remove_value":
		index, err := strconv.Atoi(c.PostForm("index"))
		if err == nil {
			_ = cc.Form.SetDraft(func(doc *models.PageContent) {
				doc.Set("values", forms.RemoveAt(doc.Records("values"), index))
			})
		}
		cc.render(c, gin.H{})
	default:
		cc.submit(c, draft.Value.Section)
	}
}

func (cc *ContentController) submit(c *gin.Context, section string) {
	err := cc.Form.Submit()
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/admin/content?notice=saved")
	case errors.Is(err, api.ErrUnauthorized):
		forceRelogin(c, cc.Sessions)
	case errors.Is(err, forms.ErrBusy):
		cc.render(c, gin.H{"Error": "Still saving, please wait."})
	default:
		logger.Warn.Printf("SaveContent: submit failed for %s: %v", section, err)
		cc.render(c, gin.H{"Error": "Failed to save content."})
	}
}

// foldSectionFields copies the posted form values into the document,
// keyed by the section's known shape.
func foldSectionFields(doc *models.PageContent, c *gin.Context) {
	switch doc.Section {
	case models.SectionHomepage:
		for _, key := range []string{"hero_title", "tagline", "hero_subtitle", "intro_heading", "intro_text"} {
			doc.Set(key, c.PostForm(key))
		}
	case models.SectionAbout:
		doc.Set("title", c.PostForm("title"))
		doc.Set("subtitle", c.PostForm("subtitle"))
		if paragraphs, ok := c.GetPostFormArray("paragraphs"); ok {
			doc.Set("paragraphs", paragraphs)
		}
		titles, _ := c.GetPostFormArray("value_titles")
		descriptions, _ := c.GetPostFormArray("value_descriptions")
		if len(titles) > 0 && len(titles) == len(descriptions) {
			values := make([]models.TitledRecord, len(titles))
			for i := range titles {
				values[i] = models.TitledRecord{Title: titles[i], Description: descriptions[i]}
			}
			doc.Set("values", values)
		}
	case models.SectionLocation:
		for _, key := range []string{"city", "state", "address", "serviceAreas", "phone", "email", "googleMapsEmbed"} {
			doc.Set(key, c.PostForm(key))
		}
	}
}

func (cc *ContentController) render(c *gin.Context, data gin.H) {
	draft, ok := cc.Form.Draft()
	if !ok {
		c.Redirect(http.StatusFound, "/admin/content")
		return
	}
	data["Section"] = draft.Value.Section
	data["Draft"] = draft
	switch draft.Value.Section {
	case models.SectionHomepage:
		data["Homepage"] = models.HomepageFrom(draft.Value)
	case models.SectionAbout:
		data["About"] = models.AboutFrom(draft.Value)
	case models.SectionLocation:
		data["Location"] = models.LocationFrom(draft.Value)
	}
	_, saving, _ := cc.Form.Busy()
	data["Saving"] = saving
	c.HTML(http.StatusOK, "edit_content.html", data)
}

func knownSection(section string) bool {
	for _, known := range editableSections {
		if known == section {
			return true
		}
	}
	return false
}
