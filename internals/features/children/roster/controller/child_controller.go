package controller

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"preschool_backend/internals/features/children/roster/dto"
	"preschool_backend/internals/features/children/roster/service"
	helper "preschool_backend/internals/helpers"
	helperOSS "preschool_backend/internals/helpers/oss"
)

type ChildController struct {
	DB   *gorm.DB
	Blob helperOSS.BlobService
}

func NewChildController(db *gorm.DB, blob helperOSS.BlobService) *ChildController {
	return &ChildController{DB: db, Blob: blob}
}

func parseChildID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid child id")
	}
	return uint(id), nil
}

// GET /api/a/children?class=&q=&page=&per_page=
func (ctl *ChildController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := service.ListChildren(ctl.DB, service.ListFilter{
		Owner:     helper.OwnerScope(c),
		ClassName: c.Query("class"),
		Q:         c.Query("q"),
		Offset:    p.Offset,
		Limit:     p.Limit,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows))
	return helper.JsonList(c, "Children fetched", dto.FromModels(rows), &pg)
}

// GET /api/a/children/classes
func (ctl *ChildController) Classes(c *fiber.Ctx) error {
	out, err := service.ListClasses(ctl.DB, helper.OwnerScope(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Classes fetched", out)
}

// GET /api/a/children/:id
func (ctl *ChildController) Get(c *fiber.Ctx) error {
	id, err := parseChildID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := service.GetChild(ctl.DB, id, helper.OwnerScope(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Child fetched", dto.FromModel(*m))
}

// POST /api/a/children/bulk
// Body: {"children":[...]} atau array polos [...]
func (ctl *ChildController) BulkUpsert(c *fiber.Ctx) error {
	var req dto.BulkUpsertRequest
	body := bytes.TrimSpace(c.Body())
	decode := c.App().Config().JSONDecoder

	if len(body) > 0 && body[0] == '[' {
		if err := decode(body, &req.Children); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
	} else if err := decode(body, &req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	return ctl.upsertRows(c, req)
}

// POST /api/a/children/import (multipart, field "file" = .xlsx)
func (ctl *ChildController) ImportExcel(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File .xlsx is required (field: file)")
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".xlsx") {
		return helper.JsonError(c, fiber.StatusBadRequest, "Only .xlsx files are supported")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cannot open uploaded file")
	}
	defer f.Close()

	rows, err := service.ParseRosterXLSX(f)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctl.upsertRows(c, dto.BulkUpsertRequest{Children: rows})
}

func (ctl *ChildController) upsertRows(c *fiber.Ctx, req dto.BulkUpsertRequest) error {
	for i := range req.Children {
		req.Children[i].Normalize()
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	seen := make(map[int]struct{}, len(req.Children))
	for _, r := range req.Children {
		if _, dup := seen[r.ChildSeq]; dup {
			return helper.JsonError(c, fiber.StatusBadRequest, fmt.Sprintf("Duplicate child_seq %d in request", r.ChildSeq))
		}
		seen[r.ChildSeq] = struct{}{}
	}

	rows, err := service.BulkUpsert(ctl.DB, req.Children, helper.GetOptionalUserID(c), helper.OwnerScope(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, fmt.Sprintf("%d children saved", len(rows)), dto.FromModels(rows))
}

// PUT /api/a/children/:id
func (ctl *ChildController) Update(c *fiber.Ctx) error {
	id, err := parseChildID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateChildRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}
	m, err := service.UpdateChild(ctl.DB, id, helper.OwnerScope(c), req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Child updated", dto.FromModel(*m))
}

// DELETE /api/a/children/:id
func (ctl *ChildController) Delete(c *fiber.Ctx) error {
	id, err := parseChildID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := service.DeleteChild(ctl.DB, id, helper.OwnerScope(c)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Child deleted", fiber.Map{"id": id})
}

// POST /api/a/children/:id/qr
func (ctl *ChildController) RegenerateQR(c *fiber.Ctx) error {
	id, err := parseChildID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := service.RegenerateQR(ctl.DB, id, helper.OwnerScope(c))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "QR regenerated", dto.FromModel(*m))
}

// POST /api/a/children/:id/avatar (multipart: image|file|photo|avatar)
func (ctl *ChildController) UploadAvatar(c *fiber.Ctx) error {
	id, err := parseChildID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	fh, err := helperOSS.GetImageFile(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Image file is required")
	}
	m, err := service.SetAvatar(c.UserContext(), ctl.DB, ctl.Blob, id, helper.OwnerScope(c), fh)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Avatar updated", dto.FromModel(*m))
}

// GET /api/a/children/qr/export?class=
func (ctl *ChildController) ExportQR(c *fiber.Ctx) error {
	data, n, err := service.ExportQRZip(ctl.DB, helper.OwnerScope(c), c.Query("class"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="qr_codes.zip"`)
	c.Set("X-Total-Count", strconv.Itoa(n))
	return c.Send(data)
}
