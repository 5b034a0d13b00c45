package controller

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
)

// saveUploadedFile stores the named multipart file and returns its public
// path. An absent file is not an error, the caller gets an empty path.
func (ctl *Blog) saveUploadedFile(c *gin.Context, field string) (string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", apierr.New(apierr.KindValidation, "invalid upload")
	}

	f, err := header.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer f.Close()

	return ctl.uploads.Save(header.Filename, f)
}

// Upload POST /api/upload, stores a single file under the "image" field.
func (ctl *Blog) Upload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "no file uploaded"))
		return
	}

	f, err := header.Open()
	if err != nil {
		apierr.Abort(c, errors.Wrap(err, "open upload"))
		return
	}
	defer f.Close()

	url, err := ctl.uploads.Save(header.Filename, f)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"imageUrl": url},
		"message": "file uploaded",
	})
}

// TestToken GET /api/test-token, echoes the claims of the bearer token.
func (ctl *Blog) TestToken(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		apierr.Abort(c, apierr.New(apierr.KindUnauthenticated, "missing token"))
		return
	}

	claims, err := ctl.svc.VerifyToken(token)
	if err != nil {
		apierr.Abort(c, apierr.New(apierr.KindInvalidCredential, "invalid token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"userId":  claims.UserID,
		"role":    claims.Role,
	})
}

// Test GET /api/test
func (ctl *Blog) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "api is up"})
}
